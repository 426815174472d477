package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voicevote/voicevote/internal/client/api"
	"github.com/voicevote/voicevote/internal/client/enrich"
	"github.com/voicevote/voicevote/internal/client/identity"
	"github.com/voicevote/voicevote/internal/client/models"
	"github.com/voicevote/voicevote/internal/client/session"
	"github.com/voicevote/voicevote/internal/client/storage"
)

// ------------ helpers ------------

func readerFromLines(lines ...string) *bufio.Reader {
	lines = append(lines, "")
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n")))
}

type memRepo struct {
	data map[string][]byte
}

func newMemRepo() *memRepo { return &memRepo{data: map[string][]byte{}} }

func (m *memRepo) Get(ctx context.Context, key string) ([]byte, error) {
	return m.data[key], nil
}
func (m *memRepo) Set(ctx context.Context, key string, value []byte) error {
	m.data[key] = value
	return nil
}
func (m *memRepo) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}
func (m *memRepo) DeleteMany(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}
func (m *memRepo) List(ctx context.Context) (map[string][]byte, error) {
	return m.data, nil
}
func (m *memRepo) Clear(ctx context.Context) error {
	m.data = map[string][]byte{}
	return nil
}

type fakeAPI struct {
	loginUser, loginPass string
	loginToken           string
	loginErr             error

	checkVerdict api.NullifierCheck
	checkErr     error

	registered *api.RegisterRequest

	posts    []models.Post
	postsErr error

	postID string
	post   models.Post

	createdCaption  string
	createdHashtags []string
	createdImageURL string
	createCalled    bool

	likedID, dislikedID string

	dashboard models.Dashboard
}

func (f *fakeAPI) Login(ctx context.Context, username, password string) (string, error) {
	f.loginUser, f.loginPass = username, password
	return f.loginToken, f.loginErr
}
func (f *fakeAPI) CheckNullifier(ctx context.Context, nullifier string) (api.NullifierCheck, error) {
	return f.checkVerdict, f.checkErr
}
func (f *fakeAPI) RegisterUser(ctx context.Context, req api.RegisterRequest) error {
	f.registered = &req
	return nil
}
func (f *fakeAPI) AllPosts(ctx context.Context) ([]models.Post, error) {
	return f.posts, f.postsErr
}
func (f *fakeAPI) Post(ctx context.Context, postID string) (models.Post, error) {
	f.postID = postID
	return f.post, nil
}
func (f *fakeAPI) CreatePost(ctx context.Context, caption string, hashtags []string, imageURL string) error {
	f.createCalled = true
	f.createdCaption = caption
	f.createdHashtags = hashtags
	f.createdImageURL = imageURL
	return nil
}
func (f *fakeAPI) Like(ctx context.Context, postID string) (models.Post, error) {
	f.likedID = postID
	return f.post, nil
}
func (f *fakeAPI) Dislike(ctx context.Context, postID string) (models.Post, error) {
	f.dislikedID = postID
	return f.post, nil
}
func (f *fakeAPI) Dashboard(ctx context.Context) (models.Dashboard, error) {
	return f.dashboard, nil
}

type fakeChain struct {
	connectAddr string
	connectErr  error
	storedFrom  string
	storedNull  string
	txHash      string
	storeCalls  int
}

func (f *fakeChain) Connect(ctx context.Context) (string, error) {
	return f.connectAddr, f.connectErr
}
func (f *fakeChain) StoreNullifier(ctx context.Context, from, nullifier string) (string, error) {
	f.storeCalls++
	f.storedFrom = from
	f.storedNull = nullifier
	return f.txHash, nil
}

type fakeMedia struct {
	filename string
	data     []byte
	url      string
	err      error
}

func (f *fakeMedia) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	f.filename = filename
	f.data = data
	return f.url, f.err
}

type fakeSuggester struct {
	content    string
	suggestion enrich.Suggestion
	err        error
}

func (f *fakeSuggester) Suggest(ctx context.Context, content string) (enrich.Suggestion, error) {
	f.content = content
	return f.suggestion, f.err
}

type fakeProver struct {
	proof string
}

func (f *fakeProver) Status(ctx context.Context) (identity.Status, error) {
	return identity.StatusLoggedIn, nil
}
func (f *fakeProver) Proof(ctx context.Context) (json.RawMessage, error) {
	return json.RawMessage(f.proof), nil
}

func newTestApp(t *testing.T, a *fakeAPI, r *bufio.Reader) (*App, *memRepo) {
	t.Helper()
	repo := newMemRepo()
	return &App{
		repo:    repo,
		session: session.NewManager(repo),
		api:     a,
		reader:  r,
	}, repo
}

func stubInputs(t *testing.T, password string) {
	t.Helper()
	origPass := getPassword
	getPassword = func(w io.Writer) ([]byte, error) { return []byte(password), nil }
	t.Cleanup(func() { getPassword = origPass })
}

// ------------ auth ------------

func TestLogin_StoresToken(t *testing.T) {
	apiC := &fakeAPI{loginToken: "tok-1"}
	app, repo := newTestApp(t, apiC, readerFromLines("alice"))
	stubInputs(t, "p@ss")

	require.NoError(t, app.Login(context.Background()))

	assert.Equal(t, "alice", apiC.loginUser)
	assert.Equal(t, "p@ss", apiC.loginPass)
	assert.Equal(t, []byte("tok-1"), repo.data[storage.KeyToken])
	assert.True(t, app.isLoggedIn())
}

func TestLogin_BackendFailure(t *testing.T) {
	apiC := &fakeAPI{loginErr: errors.New("invalid credentials")}
	app, repo := newTestApp(t, apiC, readerFromLines("alice"))
	stubInputs(t, "wrong")

	require.Error(t, app.Login(context.Background()))
	assert.Empty(t, repo.data[storage.KeyToken])
}

func TestLogout_ClearsToken(t *testing.T) {
	app, repo := newTestApp(t, &fakeAPI{}, readerFromLines())
	repo.data[storage.KeyToken] = []byte("tok-1")

	require.NoError(t, app.Logout(context.Background()))
	assert.Empty(t, repo.data[storage.KeyToken])
	assert.False(t, app.isLoggedIn())
}

// ------------ feed ------------

func TestExplore_UnknownCategoryDoesNotFetch(t *testing.T) {
	apiC := &fakeAPI{postsErr: errors.New("should not be called")}
	app, _ := newTestApp(t, apiC, readerFromLines())

	require.NoError(t, app.Explore(context.Background(), "bogus"))
}

func TestExplore_FetchesFeed(t *testing.T) {
	apiC := &fakeAPI{posts: []models.Post{
		{ID: "1", Caption: "Pothole", Likes: 5},
		{ID: "2", Caption: "Streetlight", Urgency: models.UrgencyCritical},
	}}
	app, _ := newTestApp(t, apiC, readerFromLines())

	require.NoError(t, app.Explore(context.Background(), "critical"))
}

func TestSearch_SurfacesFetchError(t *testing.T) {
	apiC := &fakeAPI{postsErr: errors.New("boom")}
	app, _ := newTestApp(t, apiC, readerFromLines())

	require.Error(t, app.Search(context.Background(), "water"))
}

// ------------ posts ------------

func TestShowLikeDislike_PassID(t *testing.T) {
	apiC := &fakeAPI{post: models.Post{ID: "42", Caption: "Pothole"}}
	app, _ := newTestApp(t, apiC, readerFromLines())
	ctx := context.Background()

	require.NoError(t, app.Show(ctx, "42"))
	require.NoError(t, app.Like(ctx, "42"))
	require.NoError(t, app.Dislike(ctx, "42"))

	assert.Equal(t, "42", apiC.postID)
	assert.Equal(t, "42", apiC.likedID)
	assert.Equal(t, "42", apiC.dislikedID)
}

func TestNewPost_PublishesWithSuggestion(t *testing.T) {
	apiC := &fakeAPI{}
	app, _ := newTestApp(t, apiC, readerFromLines(
		"Huge pothole on Main St", // description
		"",                        // end of multiline
		"",                        // accept suggested caption
		"water, #roads",           // extra hashtags
		"/tmp/pothole.png",        // photo path
	))
	su := &fakeSuggester{suggestion: enrich.Suggestion{
		Caption:  "Fix the Main St pothole",
		Hashtags: []string{"pothole"},
	}}
	app.suggest = su
	store := &fakeMedia{url: "https://gw/ipfs/Qm1"}
	app.media = store

	origRead := readFile
	readFile = func(name string) ([]byte, error) { return []byte("img-bytes"), nil }
	t.Cleanup(func() { readFile = origRead })

	require.NoError(t, app.NewPost(context.Background()))

	assert.Equal(t, "Huge pothole on Main St", su.content)
	assert.Equal(t, "pothole.png", store.filename)
	assert.True(t, apiC.createCalled)
	assert.Equal(t, "Fix the Main St pothole", apiC.createdCaption)
	assert.Equal(t, []string{"pothole", "water", "roads"}, apiC.createdHashtags)
	assert.Equal(t, "https://gw/ipfs/Qm1", apiC.createdImageURL)
}

func TestNewPost_RejectedSuggestionFallsBackToManualCaption(t *testing.T) {
	apiC := &fakeAPI{}
	app, _ := newTestApp(t, apiC, readerFromLines(
		"My cat is cute", // description
		"",               // end of multiline
		"Manual caption", // manual caption prompt
		"",               // no extra hashtags
		"",               // no photo
	))
	app.suggest = &fakeSuggester{err: enrich.ErrRejected}
	app.media = &fakeMedia{}

	require.NoError(t, app.NewPost(context.Background()))

	assert.True(t, apiC.createCalled)
	assert.Equal(t, "Manual caption", apiC.createdCaption)
	assert.Empty(t, apiC.createdHashtags)
	assert.Empty(t, apiC.createdImageURL)
}

func TestNewPost_EmptyDescriptionAborts(t *testing.T) {
	apiC := &fakeAPI{}
	app, _ := newTestApp(t, apiC, readerFromLines("", ""))
	app.suggest = &fakeSuggester{}

	require.NoError(t, app.NewPost(context.Background()))
	assert.False(t, apiC.createCalled)
}

// ------------ registration ------------

func TestRegister_FullFlow(t *testing.T) {
	apiC := &fakeAPI{checkVerdict: api.NullifierCheck{OK: true}}
	app, repo := newTestApp(t, apiC, readerFromLines(
		"DOC-123",    // identity document
		"California", // region
	))
	chain := &fakeChain{connectAddr: "0xAbC", txHash: "0xTX"}
	app.chain = chain
	app.newProver = func(ctx context.Context, seed int64, document string) (identity.Provider, error) {
		return &fakeProver{proof: `{"nullifier":"null-1"}`}, nil
	}
	stubInputs(t, "p@ss")

	require.NoError(t, app.Register(context.Background()))

	require.NotNil(t, apiC.registered)
	assert.Equal(t, api.RegisterRequest{
		Nullifier:     "null-1",
		KYCHash:       "0xTX",
		WalletAddress: "0xAbC",
		State:         "California",
		Password:      "p@ss",
	}, *apiC.registered)
	assert.Equal(t, 1, chain.storeCalls)
	assert.Equal(t, "null-1", chain.storedNull)
	assert.Equal(t, []byte("0xTX"), repo.data[storage.KeyTxHash])
}

func TestRegister_NegativeVerdictStops(t *testing.T) {
	apiC := &fakeAPI{checkVerdict: api.NullifierCheck{OK: false, Message: "already registered"}}
	app, _ := newTestApp(t, apiC, readerFromLines("DOC-123"))
	chain := &fakeChain{}
	app.chain = chain
	app.newProver = func(ctx context.Context, seed int64, document string) (identity.Provider, error) {
		return &fakeProver{proof: `{"nullifier":"null-1"}`}, nil
	}

	require.NoError(t, app.Register(context.Background()))

	assert.Zero(t, chain.storeCalls)
	assert.Nil(t, apiC.registered)
}

func TestRegister_ResumesAtProfile(t *testing.T) {
	apiC := &fakeAPI{}
	app, repo := newTestApp(t, apiC, readerFromLines("Texas"))
	chain := &fakeChain{}
	app.chain = chain
	repo.data[storage.KeyNullifier] = []byte("null-9")
	repo.data[storage.KeyNullifierChecked] = []byte("true")
	repo.data[storage.KeyTxHash] = []byte("0xOLD")
	repo.data[storage.KeyWalletAddress] = []byte("0xWallet")
	stubInputs(t, "p@ss")

	require.NoError(t, app.Register(context.Background()))

	assert.Zero(t, chain.storeCalls)
	require.NotNil(t, apiC.registered)
	assert.Equal(t, "null-9", apiC.registered.Nullifier)
	assert.Equal(t, "0xOLD", apiC.registered.KYCHash)
	assert.Equal(t, "Texas", apiC.registered.State)
}

// ------------ profile ------------

func TestProfile_PrintsDashboard(t *testing.T) {
	apiC := &fakeAPI{dashboard: models.Dashboard{
		UserInfo: models.UserInfo{Username: "anon-1", State: "California"},
		Posts:    []models.Post{{ID: "1", LikeCount: 3}, {ID: "2", LikeCount: 4}},
	}}
	app, _ := newTestApp(t, apiC, readerFromLines())

	require.NoError(t, app.Profile(context.Background()))
}
