package services

import (
	"context"
	"fmt"

	"travelgo/internal/domain"
	"travelgo/internal/domain/models"
	"travelgo/internal/repositories"
	"travelgo/internal/utils"
)

// PackageService owns the catalog rules: packages start as drafts,
// publishing requires a complete itinerary, and templates can be
// duplicated into new drafts.
type PackageService struct {
	Packages  repositories.PackageRepository
	Locations repositories.LocationRepository
	RequestID string
}

// Create inserts a new draft package.
func (s PackageService) Create(np repositories.NewPackage) (models.Package, error) {
	if np.NoOfDays < 1 {
		return models.Package{}, domain.ValidationError{Field: "no_of_days", Msg: "must be at least 1"}
	}
	if np.BasePrice != nil && *np.BasePrice < 0 {
		return models.Package{}, domain.ValidationError{Field: "base_price", Msg: "must not be negative"}
	}

	packageID, err := s.Packages.Create(np)
	if err != nil {
		return models.Package{}, err
	}

	utils.LogEvent(s.RequestID, "package", "create", "package_id="+packageID)
	return s.Packages.GetByID(packageID)
}

// Update applies a partial update. Status changes go through Publish
// and Unpublish so drafts cannot skip the itinerary check.
func (s PackageService) Update(packageID string, u models.PackageUpdate) (models.Package, error) {
	if u.Status != nil {
		return models.Package{}, domain.ValidationError{Field: "status", Msg: "use the publish endpoint to change status"}
	}
	if u.NoOfDays != nil && *u.NoOfDays < 1 {
		return models.Package{}, domain.ValidationError{Field: "no_of_days", Msg: "must be at least 1"}
	}
	if u.BasePrice != nil && *u.BasePrice < 0 {
		return models.Package{}, domain.ValidationError{Field: "base_price", Msg: "must not be negative"}
	}

	if _, err := s.Packages.GetByID(packageID); err != nil {
		return models.Package{}, err
	}
	if err := s.Packages.Update(packageID, u); err != nil {
		return models.Package{}, err
	}
	return s.Packages.GetByID(packageID)
}

// Publish makes a package bookable. Every declared day must have at
// least one itinerary stop.
func (s PackageService) Publish(packageID string) (models.Package, error) {
	pkg, err := s.Packages.GetWithItinerary(packageID)
	if err != nil {
		return models.Package{}, err
	}
	if pkg.Status == models.PackagePublished {
		return models.Package{}, domain.ConflictError{Resource: "package", Msg: "already published"}
	}

	for day := 1; day <= pkg.NoOfDays; day++ {
		if len(pkg.Itinerary[day]) == 0 {
			return models.Package{}, domain.ValidationError{
				Field: "itinerary",
				Msg:   fmt.Sprintf("day %d has no locations", day),
			}
		}
	}

	if err := s.Packages.SetStatus(packageID, models.PackagePublished); err != nil {
		return models.Package{}, err
	}

	utils.LogEvent(s.RequestID, "package", "publish", "package_id="+packageID)
	return s.Packages.GetByID(packageID)
}

// Unpublish returns a package to draft. Existing bookings keep their
// reference; the package just stops accepting new ones.
func (s PackageService) Unpublish(packageID string) (models.Package, error) {
	if _, err := s.Packages.GetByID(packageID); err != nil {
		return models.Package{}, err
	}
	if err := s.Packages.SetStatus(packageID, models.PackageDraft); err != nil {
		return models.Package{}, err
	}

	utils.LogEvent(s.RequestID, "package", "unpublish", "package_id="+packageID)
	return s.Packages.GetByID(packageID)
}

// ReplaceItinerary swaps the whole itinerary atomically after checking
// day numbers against the package and every referenced location.
func (s PackageService) ReplaceItinerary(ctx context.Context, packageID string, stops []models.ItineraryInput) (models.PackageWithItinerary, error) {
	pkg, err := s.Packages.GetByID(packageID)
	if err != nil {
		return models.PackageWithItinerary{}, err
	}

	seen := map[string]bool{}
	for i, stop := range stops {
		if stop.DayNumber < 1 || stop.DayNumber > pkg.NoOfDays {
			return models.PackageWithItinerary{}, domain.ValidationError{
				Field: fmt.Sprintf("itinerary[%d].day_number", i),
				Msg:   fmt.Sprintf("must be between 1 and %d", pkg.NoOfDays),
			}
		}
		if seen[stop.LocationID] {
			continue
		}
		if _, err := s.Locations.GetByID(stop.LocationID); err != nil {
			if domain.IsNotFound(err) {
				return models.PackageWithItinerary{}, domain.ValidationError{
					Field: fmt.Sprintf("itinerary[%d].location_id", i),
					Msg:   "location does not exist",
				}
			}
			return models.PackageWithItinerary{}, err
		}
		seen[stop.LocationID] = true
	}

	if err := s.Packages.ReplaceItinerary(ctx, packageID, stops); err != nil {
		return models.PackageWithItinerary{}, err
	}

	utils.LogEvent(s.RequestID, "package", "replace_itinerary",
		fmt.Sprintf("package_id=%s stops=%d", packageID, len(stops)))
	return s.Packages.GetWithItinerary(packageID)
}

// Duplicate copies a package and its itinerary into a new draft owned
// by the acting admin.
func (s PackageService) Duplicate(ctx context.Context, packageID, title, createdBy string) (models.PackageWithItinerary, error) {
	if title == "" {
		src, err := s.Packages.GetByID(packageID)
		if err != nil {
			return models.PackageWithItinerary{}, err
		}
		title = src.Title + " (copy)"
	}

	newID, err := s.Packages.Duplicate(ctx, packageID, title, createdBy)
	if err != nil {
		return models.PackageWithItinerary{}, err
	}

	utils.LogEvent(s.RequestID, "package", "duplicate",
		fmt.Sprintf("package_id=%s new_package_id=%s", packageID, newID))
	return s.Packages.GetWithItinerary(newID)
}

// Deactivate soft-deletes the package so history stays intact.
func (s PackageService) Deactivate(packageID string) error {
	if _, err := s.Packages.GetByID(packageID); err != nil {
		return err
	}
	if err := s.Packages.Deactivate(packageID); err != nil {
		return err
	}

	utils.LogEvent(s.RequestID, "package", "deactivate", "package_id="+packageID)
	return nil
}
