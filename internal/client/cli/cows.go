package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/Semicolon-Stardust/kamdhenuseva-go/internal/client/api"
	"github.com/Semicolon-Stardust/kamdhenuseva-go/internal/client/models"
)

// Cows lists cows, optionally filtered. When the backend is unreachable the
// last cached list is shown instead.
func (a *App) Cows(ctx context.Context) error {
	q, err := a.promptCowQuery()
	if err != nil {
		return err
	}

	cows, err := a.coordinator.FetchCows(ctx, q)
	if err != nil {
		if errors.Is(err, api.ErrUnavailable) {
			return a.cowsOffline(ctx)
		}
		a.reportError(err)
		return err
	}

	if err := a.cache.Cows.ReplaceAll(ctx, cows); err != nil {
		a.log.Warn(ctx, "error refreshing cow cache", "error", err)
	}

	a.printCows(cows)
	return nil
}

func (a *App) cowsOffline(ctx context.Context) error {
	cows, err := a.cache.Cows.GetAll(ctx)
	if err != nil {
		a.reportError(err)
		return err
	}
	fmt.Fprintln(a.out, "Server unavailable, showing cached list")
	a.printCows(cows)
	return nil
}

// Cow shows one cow by id, falling back to the cache when offline.
func (a *App) Cow(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Enter cow id", a.out)
	if err != nil {
		return err
	}

	cow, err := a.coordinator.FetchCowByID(ctx, id)
	if err != nil {
		if errors.Is(err, api.ErrUnavailable) {
			cow, cacheErr := a.cache.Cows.GetByID(ctx, id)
			if cacheErr != nil {
				a.reportError(err)
				return err
			}
			fmt.Fprintln(a.out, "Server unavailable, showing cached record")
			a.printCow(cow)
			return nil
		}
		a.reportError(err)
		return err
	}

	a.printCow(cow)
	return nil
}

// AddCow creates a cow record (admin only). A local photo path, when given,
// is uploaded first and its URL stored on the record.
func (a *App) AddCow(ctx context.Context) error {
	in, err := a.promptCowInput()
	if err != nil {
		return err
	}

	cow, err := a.coordinator.CreateCow(ctx, in)
	if err != nil {
		a.reportError(err)
		return err
	}
	fmt.Fprintf(a.out, "Created cow %s (%s)\n", cow.Name, cow.ID)
	return nil
}

// EditCow updates a cow record (admin only).
func (a *App) EditCow(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Enter cow id", a.out)
	if err != nil {
		return err
	}
	in, err := a.promptCowInput()
	if err != nil {
		return err
	}

	cow, err := a.coordinator.UpdateCow(ctx, id, in)
	if err != nil {
		a.reportError(err)
		return err
	}
	fmt.Fprintf(a.out, "Updated cow %s (%s)\n", cow.Name, cow.ID)
	return nil
}

// RemoveCow deletes a cow record (admin only).
func (a *App) RemoveCow(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Enter cow id", a.out)
	if err != nil {
		return err
	}
	ok, err := GetYesNo(a.reader, "Delete cow "+id+"?", a.out)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	if err := a.coordinator.DeleteCow(ctx, id); err != nil {
		a.reportError(err)
		return err
	}
	fmt.Fprintln(a.out, "Deleted")
	return nil
}

// UploadPhoto pushes a local photo to storage and prints the resulting URL,
// ready to paste into addcow/editcow.
func (a *App) UploadPhoto(ctx context.Context) error {
	path, err := GetSimpleText(a.reader, "Enter local photo path", a.out)
	if err != nil {
		return err
	}

	url, err := a.uploader.UploadPhoto(ctx, path)
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return err
	}
	fmt.Fprintln(a.out, "Uploaded:", url)
	return nil
}

func (a *App) promptCowQuery() (*models.CowQuery, error) {
	name, err := GetSimpleText(a.reader, "Filter by name (empty for all)", a.out)
	if err != nil {
		return nil, err
	}
	sick, err := GetYesNo(a.reader, "Only sick cows?", a.out)
	if err != nil {
		return nil, err
	}
	aged, err := GetYesNo(a.reader, "Only aged cows?", a.out)
	if err != nil {
		return nil, err
	}
	adopted, err := GetYesNo(a.reader, "Only adopted cows?", a.out)
	if err != nil {
		return nil, err
	}
	sort, err := GetSimpleText(a.reader, "Sort by (name/age, empty for default)", a.out)
	if err != nil {
		return nil, err
	}
	return &models.CowQuery{Name: name, Sick: sick, Aged: aged, Adopted: adopted, Sort: sort}, nil
}

func (a *App) promptCowInput() (models.CowInput, error) {
	var in models.CowInput

	name, err := GetSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return in, err
	}
	ageText, err := GetSimpleText(a.reader, "Enter age in years", a.out)
	if err != nil {
		return in, err
	}
	age, err := strconv.Atoi(ageText)
	if err != nil {
		return in, fmt.Errorf("invalid age %q: %w", ageText, err)
	}
	sick, err := GetYesNo(a.reader, "Is the cow sick?", a.out)
	if err != nil {
		return in, err
	}
	aged, err := GetYesNo(a.reader, "Is the cow aged?", a.out)
	if err != nil {
		return in, err
	}
	adopted, err := GetYesNo(a.reader, "Is the cow adopted?", a.out)
	if err != nil {
		return in, err
	}
	gender, err := GetSimpleText(a.reader, "Enter gender (optional)", a.out)
	if err != nil {
		return in, err
	}
	description, err := GetSimpleText(a.reader, "Enter description (optional)", a.out)
	if err != nil {
		return in, err
	}
	photoPath, err := GetSimpleText(a.reader, "Local photo path (optional)", a.out)
	if err != nil {
		return in, err
	}

	in = models.CowInput{
		Name:           name,
		Age:            age,
		SicknessStatus: sick,
		AgedStatus:     aged,
		AdoptionStatus: adopted,
		Gender:         gender,
		Description:    description,
	}

	if photoPath != "" {
		url, err := a.uploader.UploadPhoto(context.Background(), photoPath)
		if err != nil {
			return in, fmt.Errorf("uploading photo: %w", err)
		}
		in.Photos = []string{url}
	}
	return in, nil
}

func (a *App) printCows(cows []models.Cow) {
	if len(cows) == 0 {
		fmt.Fprintln(a.out, "No cows found")
		return
	}
	for _, c := range cows {
		flags := ""
		if c.SicknessStatus {
			flags += " sick"
		}
		if c.AgedStatus {
			flags += " aged"
		}
		if c.AdoptionStatus {
			flags += " adopted"
		}
		fmt.Fprintf(a.out, "%s  %s (%d)%s\n", c.ID, c.Name, c.Age, flags)
	}
}

func (a *App) printCow(c *models.Cow) {
	fmt.Fprintf(a.out, "%s (%s)\n", c.Name, c.ID)
	fmt.Fprintf(a.out, "  age: %d, gender: %s\n", c.Age, c.Gender)
	fmt.Fprintf(a.out, "  sick: %v, aged: %v, adopted: %v\n", c.SicknessStatus, c.AgedStatus, c.AdoptionStatus)
	if c.Description != "" {
		fmt.Fprintln(a.out, " ", c.Description)
	}
	for _, p := range c.Photos {
		fmt.Fprintln(a.out, "  photo:", p)
	}
}
