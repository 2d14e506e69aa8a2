package v1

import "time"

type Scheme struct {
	ID       uint64  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Link     *string `json:"link,omitempty"`
}

type SchemeInput struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Link     *string `json:"link,omitempty"`
}

type ListSchemesResponse struct {
	Schemes []*Scheme `json:"schemes"`
}

type CountSchemesResponse struct {
	Count int64 `json:"count"`
}

// Section is the home page panel a quick link belongs to.
type Section string

const (
	SectionOfficialLinks        Section = "officialLinks"
	SectionStudyCorner          Section = "studyCorner"
	SectionPreparationResources Section = "preparationResources"
)

func (s Section) Valid() bool {
	switch s {
	case SectionOfficialLinks, SectionStudyCorner, SectionPreparationResources:
		return true
	}
	return false
}

// LinkStatus tells a visitor whether a link can be followed yet.
type LinkStatus struct {
	IsAvailable bool   `json:"isAvailable"`
	Label       string `json:"label"`
}

type QuickLink struct {
	ID          uint64     `json:"id"`
	Section     Section    `json:"section"`
	Label       string     `json:"label"`
	URL         string     `json:"url"`
	Highlighted bool       `json:"highlighted"`
	Position    int        `json:"position"`
	Status      LinkStatus `json:"status"`
}

type QuickLinkInput struct {
	Section     Section `json:"section"`
	Label       string  `json:"label"`
	URL         string  `json:"url"`
	Highlighted bool    `json:"highlighted"`
	Position    int     `json:"position"`
}

type ListQuickLinksResponse struct {
	Links []*QuickLink `json:"links"`
}

// Region is the job list a simple job appears in.
type Region string

const (
	RegionRajasthan Region = "Rajasthan"
	RegionIndia     Region = "India"
)

func (r Region) Valid() bool {
	switch r {
	case RegionRajasthan, RegionIndia:
		return true
	}
	return false
}

type SimpleJob struct {
	ID               uint64     `json:"id"`
	Title            string     `json:"title"`
	Region           Region     `json:"category"`
	LastDate         string     `json:"lastDate"`
	NotificationLink string     `json:"notificationLink"`
	Status           LinkStatus `json:"status"`
}

type SimpleJobInput struct {
	Title            string `json:"title"`
	Region           Region `json:"category"`
	LastDate         string `json:"lastDate"`
	NotificationLink string `json:"notificationLink"`
}

type ListSimpleJobsResponse struct {
	Jobs []*SimpleJob `json:"jobs"`
}

// CardCategory is the home page ticker card an entry belongs to.
type CardCategory string

const (
	CardLatestJobs CardCategory = "latestJobs"
	CardAdmitCards CardCategory = "admitCards"
	CardResults    CardCategory = "results"
)

func (c CardCategory) Valid() bool {
	switch c {
	case CardLatestJobs, CardAdmitCards, CardResults:
		return true
	}
	return false
}

type HomeCard struct {
	ID       uint64       `json:"id"`
	Category CardCategory `json:"category"`
	Title    string       `json:"title"`
	LastDate string       `json:"lastDate"`
	Position int          `json:"position"`
}

type HomeCardInput struct {
	Category CardCategory `json:"category"`
	Title    string       `json:"title"`
	LastDate string       `json:"lastDate"`
}

type ListHomeCardsResponse struct {
	Cards []*HomeCard `json:"cards"`
}

// Answer is one of the four options of a quiz question.
type Answer string

const (
	AnswerA Answer = "A"
	AnswerB Answer = "B"
	AnswerC Answer = "C"
	AnswerD Answer = "D"
)

func (a Answer) Valid() bool {
	switch a {
	case AnswerA, AnswerB, AnswerC, AnswerD:
		return true
	}
	return false
}

type DailyQuiz struct {
	Question      string    `json:"question"`
	OptionA       string    `json:"optionA"`
	OptionB       string    `json:"optionB"`
	OptionC       string    `json:"optionC"`
	OptionD       string    `json:"optionD"`
	CorrectAnswer Answer    `json:"correctAnswer"`
	Explanation   string    `json:"explanation"`
	PublishedAt   time.Time `json:"publishedAt"`
}

type PublishDailyQuizRequest struct {
	Question      string `json:"question"`
	OptionA       string `json:"optionA"`
	OptionB       string `json:"optionB"`
	OptionC       string `json:"optionC"`
	OptionD       string `json:"optionD"`
	CorrectAnswer Answer `json:"correctAnswer"`
	Explanation   string `json:"explanation"`
}

type GetDailyQuizResponse struct {
	// Quiz is nil when nothing is published.
	Quiz *DailyQuiz `json:"quiz"`
}

type AskRequest struct {
	Question string `json:"question"`
}

type AskResponse struct {
	Answer string `json:"answer"`
}

type Age struct {
	Years  int `json:"years"`
	Months int `json:"months"`
	Days   int `json:"days"`
}

type CalculateAgeRequest struct {
	DateOfBirth string `json:"dateOfBirth"`
	AsOf        string `json:"asOf"`
}

type CalculateAgeResponse struct {
	Age Age `json:"age"`
}

type CheckEligibilityRequest struct {
	ID          uint64 `json:"id"`
	DateOfBirth string `json:"dateOfBirth"`
	// AsOf defaults to the post's last date, then to today.
	AsOf string `json:"asOf,omitempty"`
}

type CheckEligibilityResponse struct {
	Age      Age    `json:"age"`
	Eligible bool   `json:"eligible"`
	Reason   string `json:"reason,omitempty"`
}
