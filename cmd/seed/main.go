// Command seed fills a fresh database with demo identities and a short
// two-party conversation, then prints the credentials to try the API
// with. It also produces a small PNG payload, base64-encoded, ready to
// paste into a send-message request body.
package main

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"chatline/auth"
	"chatline/domain"
	"chatline/internal"
	"chatline/repositories"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	gookit "github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
)

const demoPassword = "s3cret-demo"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "seed failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.ERROR))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() { _ = db.Close() }()

	users := repositories.NewUserRepository(db)
	messages := repositories.NewMessageRepository(db, log)

	gookit.Bold.Println("Chatline: seeding demo data...")

	hash, err := auth.HashPassword(demoPassword)
	if err != nil {
		return err
	}

	seeds := []struct{ name, email string }{
		{"Alice", "alice@example.com"},
		{"Bob", "bob@example.com"},
		{"Clara", "clara@example.com"},
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Name", "Email", "ID", "Password"})

	var created []domain.User
	for _, s := range seeds {
		user, err := users.CreateUser(s.name, s.email, hash)
		if err != nil {
			return fmt.Errorf("seeding %s: %w", s.email, err)
		}
		created = append(created, user)
		table.Append([]string{user.Name, user.Email, user.ID, demoPassword})
	}
	table.Render()

	// A short Alice <-> Bob thread so the sidebar has something to show.
	lines := []struct {
		from, to int
		text     string
	}{
		{0, 1, "hi"},
		{1, 0, "hey"},
		{0, 1, "how is the demo going?"},
	}
	for _, l := range lines {
		message, err := domain.NewMessage(created[l.from].ID, created[l.to].ID, l.text, "")
		if err != nil {
			return err
		}
		if err = messages.Store(message); err != nil {
			return err
		}
	}
	gookit.Green.Printf("Seeded %d users and %d messages\n", len(created), len(lines))

	// A real PNG payload for exercising the image path end to end.
	payloadPath := "demo_image_payload.txt"
	if err = writeImagePayload(payloadPath); err != nil {
		return err
	}
	gookit.Cyan.Printf("Base64 PNG payload written to %s\n", payloadPath)

	return nil
}

// writeImagePayload generates a small gradient PNG and stores it as a
// base64 data URL, the exact shape the send endpoint accepts.
func writeImagePayload(path string) error {
	width, height := 64, 64
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{uint8(4 * x), 100, uint8(4 * y), 0xff})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}

	payload := "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
	return os.WriteFile(path, []byte(payload), 0o644)
}
