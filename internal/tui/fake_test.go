package tui

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/golang-jwt/jwt/v5"

	"github.com/naveenspark/estate/internal/logging"
	"github.com/naveenspark/estate/internal/session"
	"github.com/naveenspark/estate/pkg/client"
	"github.com/naveenspark/estate/pkg/domain"
)

var errFake = errors.New("fake: request failed")

// fakeAPI records calls and returns canned results.
type fakeAPI struct {
	mu    sync.Mutex
	calls map[string]int

	searches     []domain.SearchQuery
	searchResult *domain.ListingPage
	searchErr    error

	listing    *domain.Listing
	listingErr error
	listingIDs []string

	tokens      *domain.TokenPair
	authErr     error
	registerErr error

	profile       *domain.Profile
	profileErr    error
	profileUserID string
	updateErr     error
	updated       []domain.Profile
	passwordErr   error
	passwords     []domain.PasswordChange
	deleteErr     error

	createErr     error
	created       []client.CreateListingRequest
	createdUserID string
	createdImages int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		calls:        map[string]int{},
		searchResult: &domain.ListingPage{TotalPages: 1},
		tokens:       &domain.TokenPair{AccessToken: "access", RefreshToken: "refresh"},
	}
}

func (f *fakeAPI) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeAPI) record(name string) {
	f.mu.Lock()
	f.calls[name]++
	f.mu.Unlock()
}

func (f *fakeAPI) Authenticate(_ context.Context, _ domain.Credentials) (*domain.TokenPair, error) {
	f.record("Authenticate")
	if f.authErr != nil {
		return nil, f.authErr
	}
	return f.tokens, nil
}

func (f *fakeAPI) Register(_ context.Context, _ domain.Registration) (*domain.TokenPair, error) {
	f.record("Register")
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return f.tokens, nil
}

func (f *fakeAPI) GetProfile(_ context.Context, userID string) (*domain.Profile, error) {
	f.record("GetProfile")
	f.profileUserID = userID
	return f.profile, f.profileErr
}

func (f *fakeAPI) UpdateProfile(_ context.Context, _ string, p domain.Profile) (*domain.Profile, error) {
	f.record("UpdateProfile")
	f.updated = append(f.updated, p)
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &p, nil
}

func (f *fakeAPI) ChangePassword(_ context.Context, req domain.PasswordChange) error {
	f.record("ChangePassword")
	f.passwords = append(f.passwords, req)
	return f.passwordErr
}

func (f *fakeAPI) DeleteAccount(_ context.Context) error {
	f.record("DeleteAccount")
	return f.deleteErr
}

func (f *fakeAPI) SearchListings(_ context.Context, q domain.SearchQuery) (*domain.ListingPage, error) {
	f.record("SearchListings")
	f.searches = append(f.searches, q)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.searchResult, nil
}

func (f *fakeAPI) GetListing(_ context.Context, id string) (*domain.Listing, error) {
	f.record("GetListing")
	f.listingIDs = append(f.listingIDs, id)
	if f.listingErr != nil {
		return nil, f.listingErr
	}
	return f.listing, nil
}

func (f *fakeAPI) CreateListing(_ context.Context, userID string, l client.CreateListingRequest, images []client.ImageUpload) (*domain.Listing, error) {
	f.record("CreateListing")
	f.created = append(f.created, l)
	f.createdUserID = userID
	f.createdImages = len(images)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &domain.Listing{ID: 1, Title: l.Title}, nil
}

func (f *fakeAPI) ListingURL(id int64) string {
	return "http://estate.test/api/v1/property/" + strconv.FormatInt(id, 10)
}

var _ API = (*fakeAPI)(nil)

func nopLog() logging.Logger { return logging.NewNop() }

// signedToken returns an HS256 token carrying claims.
func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}

// loggedIn returns a memory session holding a token for user 42.
func loggedIn(t *testing.T) *session.Manager {
	t.Helper()
	s := session.NewMemory()
	tok := signedToken(t, jwt.MapClaims{"user_id": "42"})
	if err := s.Save(context.Background(), domain.TokenPair{AccessToken: tok, RefreshToken: "r"}); err != nil {
		t.Fatalf("save session: %v", err)
	}
	return s
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func keyOf(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

// run executes cmd and returns its message, failing on a nil command.
func run(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command, got nil")
	}
	return cmd()
}
