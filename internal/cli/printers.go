package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/AMLI14/csc698-TeamAmyAndWilliam/internal/model"
)

const gridWidth = 21 // seven columns of "%2d "

// printMonthGrid renders a month as a weekly grid. Days carrying at
// least one event print bold, the selected day is underlined.
func printMonthGrid(year int, month time.Month, eventDays []int, selectedDay int) {
	hasEvent := make(map[int]bool, len(eventDays))
	for _, d := range eventDays {
		hasEvent[d] = true
	}

	title := fmt.Sprintf("%s %d", month, year)
	mid := (gridWidth - len(title)) / 2
	if mid < 0 {
		mid = 0
	}
	tf := color.New(color.FgWhite, color.Italic)
	tf.Printf("%s%s\n", strings.Repeat(" ", mid), title)

	faint := color.New(color.Faint, color.FgWhite)
	bold := color.New(color.Bold, color.FgHiWhite)
	selected := color.New(color.Underline)
	selectedBold := color.New(color.Underline, color.Bold, color.FgHiWhite)

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	wd := first.Weekday()
	for i := time.Sunday; i < wd; i++ {
		fmt.Print("   ")
	}

	days := model.DaysInMonth(year, month)
	for day := 1; day <= days; day++ {
		p := faint
		switch {
		case day == selectedDay && hasEvent[day]:
			p = selectedBold
		case day == selectedDay:
			p = selected
		case hasEvent[day]:
			p = bold
		}
		p.Printf("%2d ", day)

		wd++
		if wd > time.Saturday {
			wd = time.Sunday
			fmt.Print("\n")
		}
	}
	fmt.Print("\n\n")
}

func printEvents(events []model.Event) {
	if len(events) == 0 {
		fmt.Println("no events")
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("#", "DATE", "TIME", "TEXT")
	for i, e := range events {
		tbl.AddRow(i, e.Date, e.Time, e.Text)
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}

func printEvent(e *model.Event) {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(e.Date, e.Time, e.Text)
	_, _ = fmt.Fprintln(color.Output, tbl)
}
