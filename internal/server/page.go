package server

import (
	"html/template"
	"net/http"
	"strconv"

	v1 "github.com/emrgen/jobpost/apis/v1"
	"github.com/emrgen/jobpost/internal/service"
	"github.com/gin-gonic/gin"
)

const pageTemplateName = "post"

var categoryLabels = map[v1.Category]string{
	v1.CategoryLatestJobs:  "Latest Jobs",
	v1.CategoryAdmitCards:  "Admit Cards",
	v1.CategoryResults:     "Results",
	v1.CategoryClosedPosts: "Closed Posts",
}

// pageRow is one label/value line of a details table.
type pageRow struct {
	Label string
	Value string
}

// pageLink is a link that renders as an anchor when available and as an
// inert label otherwise.
type pageLink struct {
	Name   string
	Action string
	URL    string
	Status v1.LinkStatus
}

type pageView struct {
	Name        string
	Category    string
	PosterImage string
	LastDate    string
	Body        template.HTML
	Dates       []pageRow
	Fees        []pageRow
	AgeLimit    []pageRow
	Vacancies   []v1.VacancyDetail
	UsefulLinks []pageLink
	Buttons     []pageLink
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func newPageLink(name, action string, url *string) pageLink {
	return pageLink{Name: name, Action: action, URL: deref(url), Status: service.Status(deref(url))}
}

func newPageView(post *v1.JobPost, body string) pageView {
	view := pageView{
		Name:        post.Name,
		Category:    categoryLabels[post.Category],
		PosterImage: deref(post.PosterImage),
		LastDate:    deref(post.ImportantDates.LastDate),
		// rendered block html escapes all block text
		Body:      template.HTML(body),
		Vacancies: post.Vacancies,
	}

	dates := post.ImportantDates
	for _, row := range []struct {
		label string
		value *string
	}{
		{"Application Begin", dates.ApplicationBegin},
		{"Last Date", dates.LastDate},
		{"Last Date for Fee Payment", dates.FeePaymentLastDate},
		{"Exam Date", dates.ExamDate},
	} {
		if v := deref(row.value); v != "" {
			view.Dates = append(view.Dates, pageRow{Label: row.label, Value: v})
		}
	}

	for _, fee := range post.Fees {
		view.Fees = append(view.Fees, pageRow{Label: fee.Name, Value: fee.Amount})
	}

	if age := post.AgeLimit; age != nil {
		if age.MinAge != nil {
			view.AgeLimit = append(view.AgeLimit, pageRow{Label: "Minimum Age", Value: strconv.FormatInt(*age.MinAge, 10) + " years"})
		}
		if age.MaxAge != nil {
			view.AgeLimit = append(view.AgeLimit, pageRow{Label: "Maximum Age", Value: strconv.FormatInt(*age.MaxAge, 10) + " years"})
		}
		if age.Relaxation {
			notes := deref(age.Notes)
			if notes == "" {
				notes = "Age Relaxation as per rules"
			}
			view.AgeLimit = append(view.AgeLimit, pageRow{Label: "Age Relaxation", Value: notes})
		}
	}

	view.UsefulLinks = []pageLink{
		newPageLink("Download Admit Card", "Download", post.AdmitCardURL),
		newPageLink("Download Syllabus PDF", "Download PDF", post.SyllabusURL),
		newPageLink("Download Notification", "Download", post.Links.Notification),
		newPageLink("Official Website", "Visit Website", post.Links.OfficialWebsite),
	}
	view.Buttons = []pageLink{
		newPageLink("Apply Online", "Apply Online", post.Links.ApplyOnline),
		newPageLink("Notification", "Download Official Notification", post.Links.Notification),
		newPageLink("Official Website", "Official Website", post.Links.OfficialWebsite),
	}

	return view
}

var pageTemplate = template.Must(template.New(pageTemplateName).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Name}}</title>
</head>
<body>
<article class="job-post">
{{if .PosterImage}}<figure class="poster"><img src="{{.PosterImage}}" alt="{{.Name}} poster"></figure>
{{else}}<div class="poster poster-fallback"><h2>{{.Name}}</h2></div>
{{end}}<h1>{{.Name}}</h1>
{{if .Category}}<p class="category">{{.Category}}</p>{{end}}
{{if .LastDate}}<p class="last-date">Last date: {{.LastDate}}</p>{{end}}
{{.Body}}
<section class="useful-links">
<h2>Useful Important Links</h2>
<table>
<thead><tr><th>Link Type</th><th>Status / Action</th></tr></thead>
<tbody>
{{range .UsefulLinks}}<tr><td>{{.Name}}</td><td>{{if .Status.IsAvailable}}<a href="{{.URL}}" target="_blank" rel="noopener noreferrer">{{.Action}}</a>{{else}}<span class="link-inactive">{{.Status.Label}}</span>{{end}}</td></tr>
{{end}}</tbody>
</table>
</section>
{{if .Dates}}<section class="important-dates">
<h2>Important Dates</h2>
<table>
<thead><tr><th>Event</th><th>Date</th></tr></thead>
<tbody>
{{range .Dates}}<tr><td>{{.Label}}</td><td>{{.Value}}</td></tr>
{{end}}</tbody>
</table>
</section>
{{end}}{{if .Fees}}<section class="fees">
<h2>Application Fee</h2>
<table>
<thead><tr><th>Category</th><th>Fee Amount</th></tr></thead>
<tbody>
{{range .Fees}}<tr><td>{{.Label}}</td><td>{{.Value}}</td></tr>
{{end}}</tbody>
</table>
</section>
{{end}}{{if .AgeLimit}}<section class="age-limit">
<h2>Age Limit</h2>
<table>
<thead><tr><th>Requirement</th><th>Details</th></tr></thead>
<tbody>
{{range .AgeLimit}}<tr><td>{{.Label}}</td><td>{{.Value}}</td></tr>
{{end}}</tbody>
</table>
</section>
{{end}}{{if .Vacancies}}<section class="vacancies">
<h2>Vacancy Details</h2>
<table>
<thead><tr><th>Post Name</th><th>Total Posts</th><th>Eligibility</th></tr></thead>
<tbody>
{{range .Vacancies}}<tr><td>{{.PostName}}</td><td>{{.TotalPosts}}</td><td>{{.Eligibility}}</td></tr>
{{end}}</tbody>
</table>
</section>
{{end}}<section class="important-links">
<h2>Important Links</h2>
{{range .Buttons}}{{if .Status.IsAvailable}}<a class="button" href="{{.URL}}" target="_blank" rel="noopener noreferrer">{{.Action}}</a>
{{else}}<span class="button link-inactive" aria-disabled="true">{{.Status.Label}}</span>
{{end}}{{end}}</section>
</article>
</body>
</html>
`))

// JobPostPage serves a post as a standalone html page.
func (h *Handlers) JobPostPage(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	got, err := h.posts.GetJobPost(c.Request.Context(), &v1.GetJobPostRequest{ID: id})
	if err != nil {
		status, _ := statusOf(err)
		c.String(status, http.StatusText(status))
		return
	}

	rendered, err := h.posts.RenderJobPost(c.Request.Context(), &v1.RenderJobPostRequest{ID: id, Format: v1.RenderFormatHTML})
	if err != nil {
		status, _ := statusOf(err)
		c.String(status, http.StatusText(status))
		return
	}

	c.HTML(http.StatusOK, pageTemplateName, newPageView(got.JobPost, rendered.Content))
}
