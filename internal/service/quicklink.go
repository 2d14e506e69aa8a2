package service

import (
	"context"
	"fmt"
	"strings"

	v1 "github.com/emrgen/jobpost/apis/v1"
	"github.com/emrgen/jobpost/block"
	"github.com/emrgen/jobpost/block/render"
	"github.com/emrgen/jobpost/internal/model"
	"github.com/emrgen/jobpost/internal/store"
)

// LinkAvailable is the status label of a link that can be followed.
const LinkAvailable = "Available"

// NewQuickLinkService creates a new QuickLinkService.
func NewQuickLinkService(store store.Store) *QuickLinkService {
	return &QuickLinkService{store: store}
}

// QuickLinkService manages the home page link panels.
type QuickLinkService struct {
	store store.Store
}

// Status reports whether url can be followed yet. Empty and unsafe urls are
// shown as coming soon, the same way inert link blocks render.
func Status(url string) v1.LinkStatus {
	url = strings.TrimSpace(url)
	if url == "" || !block.SafeURL(url) {
		return v1.LinkStatus{IsAvailable: false, Label: render.InactiveLinkLabel}
	}
	return v1.LinkStatus{IsAvailable: true, Label: LinkAvailable}
}

func validateQuickLink(in *v1.QuickLinkInput) error {
	if !in.Section.Valid() {
		return fmt.Errorf("%w: unknown section %q", ErrInvalidArgument, in.Section)
	}
	if strings.TrimSpace(in.Label) == "" {
		return fmt.Errorf("%w: label is required", ErrInvalidArgument)
	}
	return nil
}

func (s *QuickLinkService) CreateQuickLink(ctx context.Context, in *v1.QuickLinkInput) (*v1.QuickLink, error) {
	if err := validateQuickLink(in); err != nil {
		return nil, err
	}

	link := &model.QuickLink{}
	applyQuickLink(link, in)
	if err := s.store.CreateQuickLink(ctx, link); err != nil {
		return nil, err
	}

	return toQuickLink(link), nil
}

func (s *QuickLinkService) GetQuickLink(ctx context.Context, id uint64) (*v1.QuickLink, error) {
	link, err := s.store.GetQuickLink(ctx, uint(id))
	if err != nil {
		return nil, err
	}
	return toQuickLink(link), nil
}

// ListQuickLinks lists links by position. A nil section lists every panel.
func (s *QuickLinkService) ListQuickLinks(ctx context.Context, section *v1.Section) (*v1.ListQuickLinksResponse, error) {
	var filter *string
	if section != nil {
		if !section.Valid() {
			return nil, fmt.Errorf("%w: unknown section %q", ErrInvalidArgument, *section)
		}
		v := string(*section)
		filter = &v
	}

	links, err := s.store.ListQuickLinks(ctx, filter)
	if err != nil {
		return nil, err
	}

	res := &v1.ListQuickLinksResponse{Links: make([]*v1.QuickLink, 0, len(links))}
	for _, link := range links {
		res.Links = append(res.Links, toQuickLink(link))
	}
	return res, nil
}

func (s *QuickLinkService) UpdateQuickLink(ctx context.Context, id uint64, in *v1.QuickLinkInput) (*v1.QuickLink, error) {
	if err := validateQuickLink(in); err != nil {
		return nil, err
	}

	link, err := s.store.GetQuickLink(ctx, uint(id))
	if err != nil {
		return nil, err
	}

	applyQuickLink(link, in)
	if err := s.store.UpdateQuickLink(ctx, link); err != nil {
		return nil, err
	}

	return toQuickLink(link), nil
}

func (s *QuickLinkService) DeleteQuickLink(ctx context.Context, id uint64) error {
	return s.store.DeleteQuickLink(ctx, uint(id))
}

func applyQuickLink(link *model.QuickLink, in *v1.QuickLinkInput) {
	link.Section = string(in.Section)
	link.Label = strings.TrimSpace(in.Label)
	link.URL = strings.TrimSpace(in.URL)
	link.Highlighted = in.Highlighted
	link.Position = in.Position
}

func toQuickLink(link *model.QuickLink) *v1.QuickLink {
	return &v1.QuickLink{
		ID:          uint64(link.ID),
		Section:     v1.Section(link.Section),
		Label:       link.Label,
		URL:         link.URL,
		Highlighted: link.Highlighted,
		Position:    link.Position,
		Status:      Status(link.URL),
	}
}
