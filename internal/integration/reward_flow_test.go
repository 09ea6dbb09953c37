package integration

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"points_platform/internal/chat"
	"points_platform/internal/domain"
	"points_platform/internal/repository"
	"points_platform/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
)

func applyMigrations(t *testing.T, db *pgxpool.Pool) {
	t.Helper()
	migDir := filepath.Join("..", "..", "internal", "migrations")
	files, err := os.ReadDir(migDir)
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}
	for _, f := range files {
		b, err := os.ReadFile(filepath.Join(migDir, f.Name()))
		if err != nil {
			t.Fatalf("read file: %v", err)
		}
		if _, err := db.Exec(context.Background(), string(b)); err != nil {
			t.Fatalf("apply migration %s: %v", f.Name(), err)
		}
	}
}

func newTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	db, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(db.Close)

	applyMigrations(t, db)
	return db
}

func createUser(t *testing.T, db *pgxpool.Pool, prefix string, isAdmin bool) *domain.User {
	t.Helper()
	u := &domain.User{
		Username: fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano()),
		IsAdmin:  isAdmin,
	}
	if err := repository.NewUserRepository(db).Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func newChatService(db *pgxpool.Pool) *service.ChatService {
	return service.NewChatService(db, chat.NewFilter(230, chat.DefaultBannedWords), 20, nil)
}

func TestChatRetentionWindow(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := createUser(t, db, "chatter", false)
	svc := newChatService(db)

	for i := 1; i <= 25; i++ {
		if _, err := svc.Post(ctx, user.ID, fmt.Sprintf("message %d", i)); err != nil {
			t.Fatalf("post message %d: %v", i, err)
		}
	}

	msgs, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list messages: %v", err)
	}
	if len(msgs) != 20 {
		t.Fatalf("retained %d messages; want 20", len(msgs))
	}
	if got := msgs[len(msgs)-1].Content; got != "message 25" {
		t.Fatalf("newest message = %q; want %q", got, "message 25")
	}
	if got := msgs[0].Content; got != "message 6" {
		t.Fatalf("oldest retained message = %q; want %q", got, "message 6")
	}
	for i := 1; i < len(msgs); i++ {
		if msgs[i].CreatedAt.Before(msgs[i-1].CreatedAt) {
			t.Fatalf("messages not in oldest-first order at index %d", i)
		}
	}
}

func TestChatMutedUserRejected(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := createUser(t, db, "muted", false)
	svc := newChatService(db)
	mod := service.NewModerationService(db, 60, 1440, nil)

	until, err := mod.TimeoutUser(ctx, user.ID, nil)
	if err != nil {
		t.Fatalf("timeout user: %v", err)
	}
	if remaining := time.Until(until); remaining < 59*time.Minute || remaining > 61*time.Minute {
		t.Fatalf("default mute expires in %v; want about an hour", remaining)
	}

	_, err = svc.Post(ctx, user.ID, "hello")
	var muted *service.MutedError
	if !errors.As(err, &muted) {
		t.Fatalf("post while muted err = %v; want MutedError", err)
	}
	// the timestamp round-trips through the database; equality up to the
	// driver's precision is enough
	if d := muted.Until.Sub(until); d > time.Millisecond || d < -time.Millisecond {
		t.Fatalf("muted until %v; set %v", muted.Until, until)
	}
}

func TestRainLifecycle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	admin := createUser(t, db, "rainadmin", true)
	user := createUser(t, db, "claimer", false)

	svc := service.NewRainService(db, 5000, 20, nil)

	rain, err := svc.Start(ctx, admin, 12.5)
	if err != nil {
		t.Fatalf("start rain: %v", err)
	}

	status, err := svc.Status(ctx, user.ID)
	if err != nil {
		t.Fatalf("rain status: %v", err)
	}
	if status == nil || status.ID != rain.ID {
		t.Fatalf("status = %+v; want active rain %d", status, rain.ID)
	}
	if status.ClaimedByViewer {
		t.Fatal("viewer has not claimed yet")
	}

	amount, balance, err := svc.Claim(ctx, user.ID)
	if err != nil {
		t.Fatalf("claim rain: %v", err)
	}
	if amount != 12.5 {
		t.Fatalf("claim amount = %v; want 12.5", amount)
	}
	if balance != user.Balance+12.5 {
		t.Fatalf("balance after claim = %v; want %v", balance, user.Balance+12.5)
	}

	if _, _, err := svc.Claim(ctx, user.ID); !errors.Is(err, service.ErrAlreadyClaimed) {
		t.Fatalf("second claim err = %v; want ErrAlreadyClaimed", err)
	}

	status, err = svc.Status(ctx, user.ID)
	if err != nil {
		t.Fatalf("rain status after claim: %v", err)
	}
	if !status.ClaimedByViewer {
		t.Fatal("status should mark the viewer as claimed")
	}
	if status.Claims != 1 {
		t.Fatalf("claim count = %d; want 1", status.Claims)
	}
}

func TestRainClaimConcurrent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	admin := createUser(t, db, "rainadmin", true)
	user := createUser(t, db, "racer", false)
	svc := service.NewRainService(db, 5000, 20, nil)

	if _, err := svc.Start(ctx, admin, 40); err != nil {
		t.Fatalf("start rain: %v", err)
	}

	// All claimers pass the read-side check before any insert commits, so
	// the losers land on the unique index, not the fast path.
	const claimers = 8
	start := make(chan struct{})
	results := make(chan error, claimers)

	var wg sync.WaitGroup
	for i := 0; i < claimers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, _, err := svc.Claim(ctx, user.ID)
			results <- err
		}()
	}
	close(start)
	wg.Wait()
	close(results)

	var wins, conflicts int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, service.ErrAlreadyClaimed):
			conflicts++
		default:
			t.Fatalf("unexpected claim error: %v", err)
		}
	}
	if wins != 1 {
		t.Fatalf("%d claims succeeded; want exactly 1", wins)
	}
	if conflicts != claimers-1 {
		t.Fatalf("%d claims conflicted; want %d", conflicts, claimers-1)
	}

	after, err := repository.NewUserRepository(db).GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if after.Balance != user.Balance+40 {
		t.Fatalf("balance = %v; want a single credit to %v", after.Balance, user.Balance+40)
	}

	status, err := svc.Status(ctx, user.ID)
	if err != nil {
		t.Fatalf("rain status: %v", err)
	}
	if status.Claims != 1 {
		t.Fatalf("claim rows = %d; want 1", status.Claims)
	}
}

func TestRainStartDeactivatesPrevious(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	admin := createUser(t, db, "rainadmin", true)
	svc := service.NewRainService(db, 5000, 20, nil)

	first, err := svc.Start(ctx, admin, 10)
	if err != nil {
		t.Fatalf("start first rain: %v", err)
	}
	second, err := svc.Start(ctx, admin, 20)
	if err != nil {
		t.Fatalf("start second rain: %v", err)
	}

	status, err := svc.Status(ctx, 0)
	if err != nil {
		t.Fatalf("rain status: %v", err)
	}
	if status == nil || status.ID != second.ID {
		t.Fatalf("active rain = %+v; want %d", status, second.ID)
	}
	if status.ID == first.ID {
		t.Fatal("first rain should no longer be active")
	}
}

func TestRainAnnouncementPosted(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	admin := createUser(t, db, "rainadmin", true)
	rains := service.NewRainService(db, 5000, 20, nil)
	chatSvc := newChatService(db)

	if _, err := rains.Start(ctx, admin, 50); err != nil {
		t.Fatalf("start rain: %v", err)
	}

	msgs, err := chatSvc.List(ctx)
	if err != nil {
		t.Fatalf("list messages: %v", err)
	}
	want := fmt.Sprintf("🌧️ Rain started by %s. Claim 50 points now!", admin.Username)
	last := msgs[len(msgs)-1]
	if last.Content != want {
		t.Fatalf("announcement = %q; want %q", last.Content, want)
	}
	if last.UserID != admin.ID {
		t.Fatalf("announcement attributed to %d; want admin %d", last.UserID, admin.ID)
	}
}

func TestSocialBonusSingleGrant(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := createUser(t, db, "social", false)
	svc := service.NewSocialBonusService(db)

	lead, balance, _, err := svc.Claim(ctx, user.ID)
	if err != nil {
		t.Fatalf("claim bonus: %v", err)
	}
	if lead.OfferID != domain.SocialOfferID {
		t.Fatalf("lead offer id = %q; want %q", lead.OfferID, domain.SocialOfferID)
	}
	if lead.Status != domain.StatusAvailable {
		t.Fatalf("lead status = %q; want %q", lead.Status, domain.StatusAvailable)
	}
	if balance != user.Balance+1 {
		t.Fatalf("balance after bonus = %v; want %v", balance, user.Balance+1)
	}

	if _, _, _, err := svc.Claim(ctx, user.ID); !errors.Is(err, service.ErrBonusAlreadyClaimed) {
		t.Fatalf("second claim err = %v; want ErrBonusAlreadyClaimed", err)
	}
}

func TestSocialBonusClaimConcurrent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := createUser(t, db, "socialrace", false)
	svc := service.NewSocialBonusService(db)

	const claimers = 8
	start := make(chan struct{})
	results := make(chan error, claimers)

	var wg sync.WaitGroup
	for i := 0; i < claimers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, _, _, err := svc.Claim(ctx, user.ID)
			results <- err
		}()
	}
	close(start)
	wg.Wait()
	close(results)

	var wins, conflicts int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, service.ErrBonusAlreadyClaimed):
			conflicts++
		default:
			t.Fatalf("unexpected bonus error: %v", err)
		}
	}
	if wins != 1 {
		t.Fatalf("%d grants succeeded; want exactly 1", wins)
	}
	if conflicts != claimers-1 {
		t.Fatalf("%d grants conflicted; want %d", conflicts, claimers-1)
	}

	after, err := repository.NewUserRepository(db).GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if after.Balance != user.Balance+1 {
		t.Fatalf("balance = %v; want a single credit to %v", after.Balance, user.Balance+1)
	}
}

func TestModerationDeleteMessage(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := createUser(t, db, "deltest", false)
	chatSvc := newChatService(db)
	mod := service.NewModerationService(db, 60, 1440, nil)

	msg, err := chatSvc.Post(ctx, user.ID, "soon to be gone")
	if err != nil {
		t.Fatalf("post message: %v", err)
	}

	if err := mod.DeleteMessage(ctx, msg.ID); err != nil {
		t.Fatalf("delete message: %v", err)
	}
	if err := mod.DeleteMessage(ctx, msg.ID); !errors.Is(err, repository.ErrMessageNotFound) {
		t.Fatalf("second delete err = %v; want ErrMessageNotFound", err)
	}
}
