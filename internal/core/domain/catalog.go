package domain

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// firstCarYear is the year the first production automobile was patented.
const firstCarYear = 1886

type CatalogEntry struct {
	Make     string
	Model    string
	Year     int
	ImageURL string
}

func (e CatalogEntry) String() string {
	return fmt.Sprintf("%d %s %s", e.Year, e.Make, e.Model)
}

// NewCar validates a catalog entry and turns it into a storage-ready car
// with a fresh id and zeroed counters.
func NewCar(entry CatalogEntry) (*Car, error) {
	if err := entry.validate(); err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidCatalogEntry, entry.String(), err)
	}

	return &Car{
		ID:        uuid.New(),
		Make:      strings.TrimSpace(entry.Make),
		Model:     strings.TrimSpace(entry.Model),
		Year:      entry.Year,
		ImageURL:  entry.ImageURL,
		CreatedAt: time.Now().UTC(),
	}, nil
}

func (e CatalogEntry) validate() error {
	if strings.TrimSpace(e.Make) == "" {
		return fmt.Errorf("make is required")
	}
	if strings.TrimSpace(e.Model) == "" {
		return fmt.Errorf("model is required")
	}
	if maxYear := time.Now().Year() + 1; e.Year < firstCarYear || e.Year > maxYear {
		return fmt.Errorf("year %d out of range [%d, %d]", e.Year, firstCarYear, maxYear)
	}

	u, err := url.Parse(e.ImageURL)
	if err != nil {
		return fmt.Errorf("image url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("image url must be an absolute http(s) url")
	}
	return nil
}

const unsplash = "https://images.unsplash.com/"

// Catalog returns the fixed set of cars the seeder installs into an empty store.
func Catalog() []CatalogEntry {
	return []CatalogEntry{
		{Make: "Lamborghini", Model: "Aventador", Year: 2023, ImageURL: unsplash + "photo-1544636331-e26879cd4d9b?ixlib=rb-4.0.3&ixid=M3wxMjA3fDB8MHxwaG90by1wYWdlfHx8fGVufDB8fHx8fA%3D%3D&auto=format&fit=crop&w=1074&q=80"},
		{Make: "Ferrari", Model: "F8 Tributo", Year: 2022, ImageURL: unsplash + "photo-1583121274602-3e2820c69888?ixlib=rb-4.0.3&ixid=M3wxMjA3fDB8MHxwaG90by1wYWdlfHx8fGVufDB8fHx8fA%3D%3D&auto=format&fit=crop&w=1170&q=80"},
		{Make: "Porsche", Model: "911 Turbo S", Year: 2023, ImageURL: unsplash + "photo-1503736334956-4c8f8e92946d?ixlib=rb-4.0.3&ixid=M3wxMjA3fDB8MHxwaG90by1wYWdlfHx8fGVufDB8fHx8fA%3D%3D&auto=format&fit=crop&w=1174&q=80"},
		{Make: "McLaren", Model: "720S", Year: 2022, ImageURL: unsplash + "photo-1618843479313-40f8afb4b4d8?ixlib=rb-4.0.3&ixid=M3wxMjA3fDB8MHxwaG90by1wYWdlfHx8fGVufDB8fHx8fA%3D%3D&auto=format&fit=crop&w=1170&q=80"},
		{Make: "BMW", Model: "M4 Competition", Year: 2023, ImageURL: unsplash + "photo-1617814076367-b759c7d7e738?ixlib=rb-4.0.3&ixid=M3wxMjA3fDB8MHxwaG90by1wYWdlfHx8fGVufDB8fHx8fA%3D%3D&auto=format&fit=crop&w=1170&q=80"},
		{Make: "Audi", Model: "R8", Year: 2022, ImageURL: unsplash + "photo-1606664515524-ed2f786a0bd6?ixlib=rb-4.0.3&ixid=M3wxMjA3fDB8MHxwaG90by1wYWdlfHx8fGVufDB8fHx8fA%3D%3D&auto=format&fit=crop&w=1170&q=80"},
		{Make: "Mercedes-AMG", Model: "GT 63 S", Year: 2023, ImageURL: unsplash + "photo-1606016159991-62ab9b123cb4?ixlib=rb-4.0.3&ixid=M3wxMjA3fDB8MHxwaG90by1wYWdlfHx8fGVufDB8fHx8fA%3D%3D&auto=format&fit=crop&w=1170&q=80"},
		{Make: "Jaguar", Model: "F-Type R", Year: 2022, ImageURL: unsplash + "photo-1549399542-7e3f8b79c341?ixlib=rb-4.0.3&ixid=M3wxMjA3fDB8MHxwaG90by1wYWdlfHx8fGVufDB8fHx8fA%3D%3D&auto=format&fit=crop&w=1170&q=80"},
		{Make: "Aston Martin", Model: "DB11", Year: 2023, ImageURL: unsplash + "photo-1606664515524-ed2f786a0bd6?ixlib=rb-4.0.3&ixid=M3wxMjA3fDB8MHxwaG90by1wYWdlfHx8fGVufDB8fHx8fA%3D%3D&auto=format&fit=crop&w=1170&q=80"},
		{Make: "Bugatti", Model: "Chiron", Year: 2022, ImageURL: unsplash + "photo-1544636331-e26879cd4d9b?ixlib=rb-4.0.3&ixid=M3wxMjA3fDB8MHxwaG90by1wYWdlfHx8fGVufDB8fHx8fA%3D%3D&auto=format&fit=crop&w=1074&q=80"},
	}
}
