package seeders

import (
	"log"

	"studytrack_go/database"
	"studytrack_go/models"
)

// SeedAll runs all seeders
func SeedAll() {
	log.Println("Starting database seeding...")

	SeedSubjects()

	log.Println("Database seeding completed successfully!")
}

type chapterSeed struct {
	title       string
	totalVideos int
}

type subjectSeed struct {
	name        string
	displayName string
	color       string
	order       int
	chapters    []chapterSeed
}

var catalog = []subjectSeed{
	{
		name:        models.SubjectPhysics,
		displayName: "Physics",
		color:       models.ColorBlue,
		order:       0,
		chapters: []chapterSeed{
			{"Units and Measurement", 8},
			{"Kinematics", 14},
			{"Laws of Motion", 12},
			{"Work, Energy and Power", 10},
			{"Gravitation", 9},
			{"Thermodynamics", 11},
			{"Electrostatics", 15},
			{"Current Electricity", 13},
			{"Optics", 16},
			{"Modern Physics", 12},
		},
	},
	{
		name:        models.SubjectChemistry,
		displayName: "Chemistry",
		color:       models.ColorPurple,
		order:       1,
		chapters: []chapterSeed{
			{"Some Basic Concepts of Chemistry", 7},
			{"Atomic Structure", 12},
			{"Chemical Bonding", 14},
			{"States of Matter", 8},
			{"Equilibrium", 13},
			{"Redox Reactions", 6},
			{"Organic Chemistry Basics", 15},
			{"Hydrocarbons", 11},
			{"Coordination Compounds", 10},
		},
	},
	{
		name:        models.SubjectMaths,
		displayName: "Maths",
		color:       models.ColorPink,
		order:       2,
		chapters: []chapterSeed{
			{"Sets and Relations", 7},
			{"Quadratic Equations", 10},
			{"Sequences and Series", 9},
			{"Trigonometry", 14},
			{"Straight Lines", 8},
			{"Conic Sections", 12},
			{"Limits and Derivatives", 13},
			{"Integrals", 16},
			{"Probability", 11},
			{"Vectors and 3D Geometry", 12},
		},
	},
}

// SeedSubjects seeds the subjects and chapters tables
func SeedSubjects() {
	var count int64
	database.DB.Model(&models.Subject{}).Count(&count)
	if count > 0 {
		log.Println("Subjects already seeded, skipping...")
		return
	}

	for _, s := range catalog {
		subject := models.Subject{
			Name:        s.name,
			DisplayName: s.displayName,
			Color:       s.color,
			Order:       s.order,
		}
		if err := database.DB.Create(&subject).Error; err != nil {
			log.Printf("Error seeding subject %s: %v", s.name, err)
			continue
		}

		for i, ch := range s.chapters {
			chapter := models.Chapter{
				SubjectID:   subject.ID,
				Title:       ch.title,
				Order:       i,
				TotalVideos: ch.totalVideos,
			}
			if err := database.DB.Create(&chapter).Error; err != nil {
				log.Printf("Error seeding chapter %s/%s: %v", s.name, ch.title, err)
			}
		}
	}

	log.Println("Subjects and chapters seeded successfully")
}
