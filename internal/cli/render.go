package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/goliatone/go-print"

	darshan "github.com/Rohit-Goswami064/Divine-Darshan"
)

const dateLayout = "02 Jan 2006"

// table renders rows with a header. In debug mode the raw value is
// printed as JSON instead.
func (a *App) table(raw any, header []string, rows [][]string) {
	if a.debug {
		fmt.Fprintln(a.out, print.MaybePrettyJSON(raw))
		return
	}
	if len(rows) == 0 {
		fmt.Fprintln(a.out, "Nothing to show")
		return
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()
}

func (a *App) details(raw any, fields [][2]string) {
	if a.debug {
		fmt.Fprintln(a.out, print.MaybePrettyJSON(raw))
		return
	}
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, f := range fields {
		if f[1] == "" {
			continue
		}
		fmt.Fprintf(w, "%s:\t%s\n", f[0], f[1])
	}
	w.Flush()
}

func (a *App) renderUser(user *darshan.User) {
	a.details(user, [][2]string{
		{"Name", user.Name},
		{"Email", user.Email},
		{"Mobile", darshan.FormatMobile(user.Mobile)},
		{"Role", roleLabel(user.Role)},
	})
}

func (a *App) renderTemple(t darshan.Temple) {
	a.details(t, [][2]string{
		{"ID", t.ID},
		{"Name", t.Name},
		{"Location", t.Location},
		{"Deity", t.Deity},
		{"Timings", t.Timings},
		{"About", t.Description},
	})
}

func (a *App) renderTemples(temples []darshan.Temple) {
	rows := make([][]string, 0, len(temples))
	for _, t := range temples {
		rows = append(rows, []string{t.ID, t.Name, t.Location, t.Deity})
	}
	a.table(temples, []string{"ID", "NAME", "LOCATION", "DEITY"}, rows)
}

func (a *App) renderServices(services []darshan.Service) {
	rows := make([][]string, 0, len(services))
	for _, s := range services {
		rows = append(rows, []string{s.ID, s.Name, formatAmount(s.Price.StringFixed(2)), s.Duration})
	}
	a.table(services, []string{"ID", "NAME", "PRICE", "DURATION"}, rows)
}

func (a *App) renderTestimonials(testimonials []darshan.Testimonial) {
	rows := make([][]string, 0, len(testimonials))
	for _, t := range testimonials {
		rating := ""
		if t.Rating > 0 {
			rating = strings.Repeat("*", t.Rating)
		}
		rows = append(rows, []string{t.Name, t.Location, rating, t.Message})
	}
	a.table(testimonials, []string{"NAME", "LOCATION", "RATING", "MESSAGE"}, rows)
}

func (a *App) renderEvent(event darshan.SeasonalEvent) {
	status := "inactive"
	if event.Active {
		status = "active"
	}
	a.details(event, [][2]string{
		{"Title", event.Title},
		{"Status", status},
		{"Starts", formatDate(event.StartDate)},
		{"Ends", formatDate(event.EndDate)},
		{"About", event.Description},
	})
}

func (a *App) renderBookings(bookings []darshan.Booking) {
	rows := make([][]string, 0, len(bookings))
	for _, b := range bookings {
		rows = append(rows, []string{b.ID, b.Date, b.TempleID, b.ServiceID, fmt.Sprint(b.Devotees), formatAmount(b.Amount.StringFixed(2)), string(b.Status)})
	}
	a.table(bookings, []string{"ID", "DATE", "TEMPLE", "SERVICE", "DEVOTEES", "AMOUNT", "STATUS"}, rows)
}

func (a *App) renderSubscriptions(subs []darshan.Subscription) {
	rows := make([][]string, 0, len(subs))
	for _, s := range subs {
		rows = append(rows, []string{s.ID, s.Plan, formatAmount(s.Amount.StringFixed(2)), s.Status, formatDate(s.StartDate), formatDate(s.EndDate)})
	}
	a.table(subs, []string{"ID", "PLAN", "AMOUNT", "STATUS", "STARTS", "ENDS"}, rows)
}

func (a *App) renderUsers(users []darshan.User) {
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{u.ID, u.Name, u.Email, darshan.FormatMobile(u.Mobile), roleLabel(u.Role)})
	}
	a.table(users, []string{"ID", "NAME", "EMAIL", "MOBILE", "ROLE"}, rows)
}

// roleLabel lowercases known roles and flags anything else.
func roleLabel(role darshan.UserRole) string {
	if strings.TrimSpace(string(role)) == "" {
		return ""
	}
	parsed, ok := darshan.ParseRole(string(role))
	if !ok {
		return "unknown"
	}
	return string(parsed)
}

func formatAmount(amount string) string {
	return "Rs " + amount
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}
