// Package seed fills a development database with plausible rostering data.
package seed

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/roosterplan/backend/internal/domain"
	"github.com/roosterplan/backend/internal/repository"
	"github.com/roosterplan/backend/internal/utils"
)

var labelNames = []string{"VCA-VOL", "BHV", "EHBO", "Heftruck", "Nachtdienst"}

var assignmentNames = []string{
	"Distributiecentrum Utrecht",
	"Kantoor Amsterdam Zuid",
	"Bouwplaats Rotterdam Haven",
	"Ziekenhuis Nijmegen",
	"Evenementenhal Den Bosch",
}

var shiftWindows = [][2]string{
	{"07:00", "15:00"},
	{"09:00", "17:00"},
	{"15:00", "23:00"},
	{"22:00", "06:00"}, // overnight
}

func SeedEmployees(repo *repository.Repository, n int, password, emailDomain string) {
	cnt := n
	for i := 0; i < n; i++ {
		employee, err := utils.GenerateRandomEmployee(password, emailDomain)
		if err != nil {
			slog.Error("failed to generate employee", slog.String("error", err.Error()))
			continue
		}

		if err := repo.CreateEmployee(employee); err != nil {
			slog.Error("failed to insert employee", slog.String("error", err.Error()))
			continue
		}

		cnt--
	}

	slog.Info("seeded employees", slog.Int("count", n-cnt))
}

// SeedLabelsAndAssignments inserts the fixed label set and a handful of
// assignments, each requiring a random subset of labels.
func SeedLabelsAndAssignments(repo *repository.Repository) {
	labels := make([]domain.ObjectLabel, 0, len(labelNames))
	for _, name := range labelNames {
		label := domain.ObjectLabel{Name: name}
		if err := repo.CreateLabel(&label); err != nil {
			slog.Error("failed to insert label", slog.String("name", name), slog.String("error", err.Error()))
			continue
		}
		labels = append(labels, label)
	}

	for _, name := range assignmentNames {
		labelIDs := make([]int64, 0)
		for _, label := range labels {
			if rand.Intn(3) == 0 {
				labelIDs = append(labelIDs, label.ID)
			}
		}

		assignment := &domain.Assignment{
			Name:    name,
			Address: fmt.Sprintf("Voorbeeldstraat %d, Nederland", rand.Intn(200)+1),
		}
		if err := repo.CreateAssignment(assignment, labelIDs); err != nil {
			slog.Error("failed to insert assignment", slog.String("name", name), slog.String("error", err.Error()))
		}
	}

	slog.Info("seeded labels and assignments", slog.Int("labels", len(labels)), slog.Int("assignments", len(assignmentNames)))
}

// SeedPatterns gives every employee that manages their own availability a
// random weekly pattern of available weekdays.
func SeedPatterns(repo *repository.Repository) {
	employees, err := repo.GetAllEmployees()
	if err != nil {
		slog.Error("failed to load employees", slog.String("error", err.Error()))
		return
	}

	cnt := 0
	for _, employee := range employees {
		if !employee.ManagesOwnAvailability {
			continue
		}

		patterns := make([]domain.AvailabilityPattern, 0)
		for day := int32(0); day <= 6; day++ {
			if rand.Intn(4) == 0 {
				continue // not available this weekday
			}
			window := shiftWindows[rand.Intn(len(shiftWindows)-1)] // skip the overnight window
			patterns = append(patterns, domain.AvailabilityPattern{
				DayOfWeek:   day,
				StartTime:   window[0],
				EndTime:     window[1],
				IsAvailable: true,
			})
		}

		if err := repo.ReplacePatterns(employee.ID, patterns); err != nil {
			slog.Error("failed to insert patterns", slog.Int64("employeeID", employee.ID), slog.String("error", err.Error()))
			continue
		}
		cnt++
	}

	slog.Info("seeded availability patterns", slog.Int("employees", cnt))
}

// SeedShifts creates n random shifts over the next two weeks, assigned to
// random employees and assignments. Roughly one in five stays open.
func SeedShifts(repo *repository.Repository, n int) {
	employees, err := repo.GetAllEmployees()
	if err != nil {
		slog.Error("failed to load employees", slog.String("error", err.Error()))
		return
	}
	assignments, err := repo.GetAllAssignments()
	if err != nil {
		slog.Error("failed to load assignments", slog.String("error", err.Error()))
		return
	}
	if len(employees) == 0 || len(assignments) == 0 {
		slog.Error("need seeded employees and assignments before seeding shifts")
		return
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)

	cnt := n
	for i := 0; i < n; i++ {
		date := today.AddDate(0, 0, rand.Intn(14))
		window := shiftWindows[rand.Intn(len(shiftWindows))]

		start, _ := time.Parse("15:04", window[0])
		end, _ := time.Parse("15:04", window[1])
		startTime := date.Add(time.Duration(start.Hour())*time.Hour + time.Duration(start.Minute())*time.Minute)
		endTime := date.Add(time.Duration(end.Hour())*time.Hour + time.Duration(end.Minute())*time.Minute)
		if !endTime.After(startTime) {
			endTime = endTime.AddDate(0, 0, 1)
		}

		shift := &domain.Shift{
			StartTime:    startTime,
			EndTime:      endTime,
			BreakMinutes: int32(rand.Intn(3) * 15),
			Status:       domain.ShiftStatusScheduled,
		}

		if rand.Intn(5) != 0 {
			employeeID := employees[rand.Intn(len(employees))].ID
			shift.EmployeeID = &employeeID
		}
		assignmentID := assignments[rand.Intn(len(assignments))].ID
		shift.AssignmentID = &assignmentID

		if err := repo.CreateShift(shift); err != nil {
			slog.Error("failed to insert shift", slog.String("error", err.Error()))
			continue
		}

		cnt--
	}

	slog.Info("seeded shifts", slog.Int("count", n-cnt))
}
