package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/ammahealth/explainer-backend/internal/infrastructure/clients/postgres"
	"github.com/ammahealth/explainer-backend/pkg/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	email       TEXT PRIMARY KEY,
	first_name  TEXT NOT NULL,
	last_name   TEXT NOT NULL,
	user_type   TEXT NOT NULL CHECK (user_type IN ('patient', 'doctor')),
	specialty   TEXT,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS clinical_snapshots (
	id             TEXT PRIMARY KEY,
	doctor_email   TEXT NOT NULL REFERENCES users(email),
	patient_email  TEXT NOT NULL REFERENCES users(email),
	diagnoses      TEXT[] NOT NULL DEFAULT '{}',
	medications    TEXT[] NOT NULL DEFAULT '{}',
	clinical_notes TEXT,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS patient_files (
	id             TEXT PRIMARY KEY,
	doctor_email   TEXT NOT NULL REFERENCES users(email),
	patient_email  TEXT NOT NULL REFERENCES users(email),
	file_type      TEXT NOT NULL CHECK (file_type IN ('file', 'video')),
	file_url       TEXT NOT NULL,
	file_name      TEXT,
	extracted_text TEXT,
	case_key       TEXT,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_clinical_snapshots_patient ON clinical_snapshots (patient_email, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_patient_files_patient ON patient_files (patient_email, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_patient_files_case_key ON patient_files (file_type, case_key, created_at DESC);
`

type seedUser struct {
	email     string
	firstName string
	lastName  string
	userType  string
	specialty string
}

type seedSnapshot struct {
	doctorEmail  string
	patientEmail string
	diagnoses    []string
	medications  []string
	notes        string
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	ctx := context.Background()

	if _, err := pgClient.DB().ExecContext(ctx, schema); err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}
	log.Println("Schema ensured")

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				patient_files,
				clinical_snapshots,
				users
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to reset tables: %v", err)
		}
	}

	// 1. Seed users
	users := []seedUser{
		{"demo.doctor@amma.health", "Sarah", "Chen", "doctor", "internal medicine"},
		{"cardio.doctor@amma.health", "Michael", "Rodriguez", "doctor", "cardiology"},
		{"neuro.doctor@amma.health", "Priya", "Sharma", "doctor", "neurology"},
		{"ortho.doctor@amma.health", "James", "Thompson", "doctor", "orthopedics"},
		{"anish.polakala@gmail.com", "Anish", "Polakala", "patient", ""},
		{"keisha.washington@email.com", "Keisha", "Washington", "patient", ""},
		{"mei.zhang@email.com", "Mei Lin", "Zhang", "patient", ""},
		{"jamal.thompson@email.com", "Jamal", "Thompson", "patient", ""},
		{"david.williams@email.com", "David", "Williams", "patient", ""},
		{"emily.rodriguez@email.com", "Emily", "Rodriguez", "patient", ""},
	}

	for _, u := range users {
		_, err := pgClient.DB().ExecContext(ctx, `
			INSERT INTO users (email, first_name, last_name, user_type, specialty, created_at)
			VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)
			ON CONFLICT (email) DO NOTHING
		`, u.email, u.firstName, u.lastName, u.userType, u.specialty, time.Now().UTC())
		if err != nil {
			log.Printf("Failed to create user %s: %v", u.email, err)
		}
	}
	log.Printf("Seeded %d users", len(users))

	// 2. Seed clinical snapshots
	snapshots := []seedSnapshot{
		{
			doctorEmail:  "demo.doctor@amma.health",
			patientEmail: "anish.polakala@gmail.com",
			diagnoses:    []string{"Type 2 Diabetes Mellitus without complications", "Essential (primary) hypertension"},
			medications:  []string{"Metformin 500mg twice daily", "Lisinopril 10mg once daily"},
			notes:        "Routine follow-up. Blood glucose well controlled, blood pressure stable at 128/82 mmHg. Continue current medications, recheck HbA1c in 3 months.",
		},
		{
			doctorEmail:  "demo.doctor@amma.health",
			patientEmail: "keisha.washington@email.com",
			diagnoses:    []string{"Mild persistent asthma, uncomplicated"},
			medications:  []string{"Albuterol HFA 90mcg as needed", "Fluticasone propionate 110mcg twice daily"},
			notes:        "Improved symptom control with current inhaler regimen. No recent exacerbations. Continue maintenance therapy.",
		},
		{
			doctorEmail:  "ortho.doctor@amma.health",
			patientEmail: "jamal.thompson@email.com",
			diagnoses:    []string{"Osteoarthritis of right knee"},
			medications:  []string{"Ibuprofen 400mg three times daily", "Acetaminophen 500mg as needed"},
			notes:        "Pain level decreased from 7/10 to 4/10 with physical therapy. Range of motion improved. Continue NSAID therapy and exercises.",
		},
		{
			doctorEmail:  "cardio.doctor@amma.health",
			patientEmail: "david.williams@email.com",
			diagnoses:    []string{"Coronary artery disease, native coronary artery", "Hyperlipidemia, unspecified"},
			medications:  []string{"Atorvastatin 40mg at bedtime", "Aspirin 81mg once daily", "Metoprolol 25mg twice daily"},
			notes:        "Stable on current medications. Preserved left ventricular function, LDL at target. Continue lipid management and antiplatelet therapy.",
		},
		{
			doctorEmail:  "neuro.doctor@amma.health",
			patientEmail: "emily.rodriguez@email.com",
			diagnoses:    []string{"Migraine without aura, not intractable"},
			medications:  []string{"Propranolol 60mg twice daily", "Sumatriptan 50mg as needed"},
			notes:        "Migraine frequency reduced from 8-10 per month to 3-4 with preventive medication. Continue current regimen.",
		},
	}

	for _, s := range snapshots {
		_, err := pgClient.DB().ExecContext(ctx, `
			INSERT INTO clinical_snapshots (id, doctor_email, patient_email, diagnoses, medications, clinical_notes, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, uuid.NewString(), s.doctorEmail, s.patientEmail, pq.Array(s.diagnoses), pq.Array(s.medications), s.notes, time.Now().UTC())
		if err != nil {
			log.Printf("Failed to create snapshot for %s: %v", s.patientEmail, err)
		}
	}
	log.Printf("Seeded %d clinical snapshots", len(snapshots))

	log.Println("Database seeding completed")
}
