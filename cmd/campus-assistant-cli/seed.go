// Package main: sample data seeding for development environments.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/campushq/campus-assistant/internal/store"
)

// sampleData is the starter data set for a demo campus.
var sampleData = map[store.Category][]store.Record{
	store.CategoryEvents: {
		{
			"title":       "Freshers Day",
			"date":        "2026-09-12",
			"time":        "10:00 AM",
			"venue":       "Main Auditorium",
			"organizer":   "Student Council",
			"description": "Welcome celebration for the incoming batch with performances and games.",
			"category":    "cultural",
			"status":      "upcoming",
		},
		{
			"title":       "Tech Fest 2026",
			"date":        "2026-10-03",
			"time":        "9:00 AM",
			"venue":       "Engineering Block",
			"organizer":   "Coding Club",
			"description": "Annual technology festival with hackathons, robotics, and workshops.",
			"category":    "technical",
			"status":      "upcoming",
		},
		{
			"title":       "Annual Sports Meet",
			"date":        "2026-11-20",
			"time":        "8:00 AM",
			"venue":       "Sports Ground",
			"organizer":   "Sports Committee",
			"description": "Track and field events, cricket, and football tournaments.",
			"category":    "sports",
			"status":      "upcoming",
		},
	},
	store.CategoryClubs: {
		{
			"name":            "Coding Club",
			"description":     "Weekly programming contests, open source sprints, and interview prep.",
			"memberCount":     120,
			"president":       "Ananya Rao",
			"contactEmail":    "coding@campus.edu",
			"meetingSchedule": "Fridays 5 PM",
			"category":        "technical",
			"status":          "Active",
		},
		{
			"name":            "Drama Club",
			"description":     "Stage productions, street plays, and improv workshops.",
			"memberCount":     45,
			"president":       "Rahul Menon",
			"contactEmail":    "drama@campus.edu",
			"meetingSchedule": "Wednesdays 4 PM",
			"category":        "cultural",
			"status":          "Active",
		},
		{
			"name":            "Photography Society",
			"description":     "Photo walks, editing sessions, and the annual campus exhibition.",
			"memberCount":     60,
			"president":       "Sara Iqbal",
			"contactEmail":    "photo@campus.edu",
			"meetingSchedule": "Saturdays 11 AM",
			"category":        "cultural",
			"status":          "Active",
		},
	},
	store.CategoryFacilities: {
		{
			"name":      "Central Library",
			"type":      "library",
			"location":  "Block A, Ground Floor",
			"hours":     "8 AM - 10 PM",
			"capacity":  400,
			"amenities": []string{"reading halls", "digital archive", "group study rooms"},
		},
		{
			"name":      "Sports Complex",
			"type":      "sports",
			"location":  "North Campus",
			"hours":     "6 AM - 9 PM",
			"capacity":  200,
			"amenities": []string{"gym", "swimming pool", "badminton courts"},
		},
		{
			"name":     "Computer Lab 2",
			"type":     "lab",
			"location": "Engineering Block, 2nd Floor",
			"hours":    "9 AM - 6 PM",
			"capacity": 80,
		},
	},
	store.CategoryFAQs: {
		{
			"question": "How do I get my ID card reissued?",
			"answer":   "Visit the admin office with a fee receipt of Rs. 100. Reissue takes two working days.",
			"category": "administration",
		},
		{
			"question": "What is the WiFi password for the hostel?",
			"answer":   "Connect to CampusNet and log in with your student credentials. No shared password is used.",
			"category": "it",
		},
		{
			"question": "How do I apply for a scholarship?",
			"answer":   "Scholarship applications open each July through the student portal under Finance.",
			"category": "finance",
		},
	},
	store.CategoryAcademicInfo: {
		{
			"title":   "Semester Exam Schedule",
			"content": "Mid-semester exams run October 12-17. End-semester exams begin December 2.",
		},
		{
			"title":   "Course Registration",
			"content": "Registration for the spring semester opens November 15 on the student portal.",
		},
	},
	store.CategoryCanteenItems: {
		{
			"name":         "Veg Sandwich",
			"category":     "snacks",
			"price":        40,
			"availability": "all day",
			"calories":     250,
			"vegetarian":   true,
		},
		{
			"name":         "Masala Dosa",
			"category":     "breakfast",
			"price":        60,
			"availability": "7 AM - 11 AM",
			"calories":     330,
			"vegetarian":   true,
		},
		{
			"name":         "Chicken Biryani",
			"category":     "lunch",
			"price":        120,
			"availability": "12 PM - 3 PM",
			"calories":     650,
			"vegetarian":   false,
		},
		{
			"name":         "Filter Coffee",
			"category":     "beverages",
			"price":        20,
			"availability": "all day",
			"calories":     90,
			"vegetarian":   true,
		},
	},
}

// newSeedCmd creates the seed subcommand.
func newSeedCmd() *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the store with sample campus data",
		Long: `Seed inserts a starter data set covering every category: events, clubs,
facilities, FAQs, academic info, and canteen items.

Use --reset to delete existing records in each category first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()

			s, err := openStore(ctx)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer s.Close()

			ui := NewUI(outputJSON, false)
			defer ui.Close()

			ui.Step("Seeding sample data into %s", cfg.Database.Driver)

			inserted := make(map[store.Category]int, len(sampleData))
			for _, cat := range store.AllCategories {
				records := sampleData[cat]
				if len(records) == 0 {
					continue
				}

				if reset {
					existing, err := s.ListAll(ctx, cat)
					if err != nil {
						return fmt.Errorf("list %s: %w", cat, err)
					}
					for _, rec := range existing {
						if err := s.Delete(ctx, cat, rec.ID()); err != nil {
							return fmt.Errorf("reset %s: %w", cat, err)
						}
					}
				}

				bar := ui.ProgressBar(string(cat), int64(len(records)))
				for _, rec := range records {
					if _, err := s.Add(ctx, cat, rec); err != nil {
						return fmt.Errorf("seed %s: %w", cat, err)
					}
					if bar != nil {
						bar.Increment()
					}
					inserted[cat]++
				}
			}

			if outputJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(inserted)
			}

			total := 0
			for _, n := range inserted {
				total += n
			}
			ui.Success("Seeded %d records across %d categories", total, len(inserted))
			return nil
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "delete existing records before seeding")
	return cmd
}
