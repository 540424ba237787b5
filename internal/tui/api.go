package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/estate/pkg/client"
	"github.com/naveenspark/estate/pkg/domain"
)

// API is the part of *client.Client the views call.
type API interface {
	Authenticate(ctx context.Context, creds domain.Credentials) (*domain.TokenPair, error)
	Register(ctx context.Context, reg domain.Registration) (*domain.TokenPair, error)
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, userID string, p domain.Profile) (*domain.Profile, error)
	ChangePassword(ctx context.Context, req domain.PasswordChange) error
	DeleteAccount(ctx context.Context) error
	SearchListings(ctx context.Context, q domain.SearchQuery) (*domain.ListingPage, error)
	GetListing(ctx context.Context, id string) (*domain.Listing, error)
	CreateListing(ctx context.Context, userID string, l client.CreateListingRequest, images []client.ImageUpload) (*domain.Listing, error)
	ListingURL(id int64) string
}

var _ API = (*client.Client)(nil)

// Navigation messages sent by views to the App.
type (
	// openDetailMsg opens the detail view for a listing.
	openDetailMsg struct{ id int64 }

	// authDoneMsg is sent after tokens from login or register were saved.
	authDoneMsg struct{}

	// loggedOutMsg is sent after the session was cleared.
	loggedOutMsg struct{}

	// gotoMsg switches to another view.
	gotoMsg struct{ to view }
)

func gotoCmd(v view) tea.Cmd {
	return func() tea.Msg { return gotoMsg{to: v} }
}
