package ui

import (
	"fmt"
	"time"

	"CopiaTrack/catalog"
	"CopiaTrack/models"
	"CopiaTrack/services"
)

// View is everything the checklist page needs to render.
type View struct {
	Categories []CategoryView
	CanSave    bool
	Notice     *Notice
}

type CategoryView struct {
	Name  string
	Title string
	Items []ItemView
}

// ItemView carries the computed presentation for one catalog item.
type ItemView struct {
	Name         string
	Checked      bool
	LastBackup   string
	Badge        string
	HasBadge     bool
	Overdue      bool
	History      []string
	HistoryLabel string
}

// BuildView derives the page model from the statuses and the transient
// state. It performs no I/O and mutates nothing.
func BuildView(statuses map[string]map[string]models.ItemStatus, state *State, now time.Time) View {
	view := View{
		CanSave: state.AnySelected(),
		Notice:  state.ActiveNotice(now),
	}
	for _, categoria := range catalog.Categories() {
		cv := CategoryView{Name: categoria, Title: catalog.Title(categoria)}
		for _, item := range catalog.ItemsOf(categoria) {
			cv.Items = append(cv.Items, buildItem(statuses[categoria][item], state))
		}
		view.Categories = append(view.Categories, cv)
	}
	return view
}

func buildItem(status models.ItemStatus, state *State) ItemView {
	iv := ItemView{
		Name:       status.Item,
		Checked:    state.Selected(status.Item),
		LastBackup: "Never",
		Overdue:    status.Overdue,
	}
	if status.LastBackup != nil {
		iv.LastBackup = services.FormatDisplay(*status.LastBackup)
	}
	if status.DaysSince != nil {
		iv.HasBadge = true
		iv.Badge = badgeText(*status.DaysSince)
	}
	// Older entries are listed only when there is more than one copy,
	// behind a toggle labelled with the total count.
	if len(status.History) > 1 {
		for _, ts := range status.History[1:] {
			iv.History = append(iv.History, services.FormatDisplay(ts))
		}
		iv.HistoryLabel = fmt.Sprintf("View history (%d copies)", len(status.History))
	}
	return iv
}

func badgeText(daysSince int) string {
	switch daysSince {
	case 0:
		return "Today"
	case 1:
		return "1 day ago"
	default:
		return fmt.Sprintf("%d days ago", daysSince)
	}
}
