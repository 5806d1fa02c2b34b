package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"coursetable/internal/model"
	"coursetable/internal/solver"
)

// renderReport builds the human-readable result: the timetable laid out per
// day, a per-rule violation summary and the improvement history.
func renderReport(instance model.Instance, result solver.Result) string {
	var builder strings.Builder

	if result.Penalty == solver.PenaltyUnsolved {
		builder.WriteString("Penalty: -1 (instance failed to load, no search performed)\n")
		return builder.String()
	}

	fmt.Fprintf(&builder, "Penalty: %v\n", result.Penalty)
	fmt.Fprintf(&builder, "Hard violations: %v\n\n", result.Violations.Hard())

	renderTimetable(&builder, instance, result.Grid)
	renderViolations(&builder, result.Violations)
	renderHistory(&builder, result.History)

	return builder.String()
}

func renderTimetable(builder *strings.Builder, instance model.Instance, grid solver.Grid) {
	header := "Period | " + strings.Join(
		lo.Map(instance.Rooms, func(room model.Room, _ int) string { return room.Name }),
		" | ",
	)

	for day := 0; day < instance.Days; day++ {
		fmt.Fprintf(builder, "Day %v\n%v\n", day+1, header)

		for periodInDay := 0; periodInDay < instance.PeriodsPerDay; periodInDay++ {
			period := day*instance.PeriodsPerDay + periodInDay

			cells := lo.Map(grid.Cells[period], func(course int, _ int) string {
				if course == solver.Empty {
					return "-"
				}
				return instance.Courses[course].Name
			})
			fmt.Fprintf(builder, "%6v | %v\n", periodInDay+1, strings.Join(cells, " | "))
		}
		builder.WriteString("\n")
	}
}

func renderViolations(builder *strings.Builder, violations *solver.Violations) {
	builder.WriteString("Violations\n")
	for _, entry := range []struct {
		name  string
		count int
	}{
		{"missing/extra lectures", violations.LectureCount},
		{"teacher conflicts", violations.TeacherConflicts},
		{"curriculum conflicts", violations.CurriculumConflicts},
		{"forbidden periods", violations.Unavailable},
		{"missing days", violations.MissingDays},
		{"isolated lectures", violations.Isolated},
		{"students over capacity", violations.Overflow},
		{"room changes", violations.Unstable},
		{"teacher days over limit", violations.OverSpread},
		{"wrong room type", violations.WrongRoomType},
		{"same-day repeats", violations.DayDuplicates},
	} {
		fmt.Fprintf(builder, "%25v: %v\n", entry.name, entry.count)
	}
	builder.WriteString("\n")
}

func renderHistory(builder *strings.Builder, history []solver.Sample) {
	if len(history) == 0 {
		return
	}

	builder.WriteString("Improvement history (most recent)\n")
	for _, sample := range history {
		fmt.Fprintf(builder, "%10v after %v\n", sample.Penalty, sample.Elapsed.Round(time.Millisecond))
	}
}
