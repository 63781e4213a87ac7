package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"notes-backend/domain/note"
	"notes-backend/pkg/auth"
	"notes-backend/pkg/client"

	"github.com/alexflint/go-arg"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type listCmd struct{}

type getCmd struct {
	ID string `arg:"positional,required"`
}

type createCmd struct {
	Text string `arg:"positional,required"`
	ID   string `arg:"--id" help:"note id, a random uuid when empty"`
}

type updateCmd struct {
	ID   string `arg:"positional,required"`
	Text string `arg:"positional,required"`
}

type deleteCmd struct {
	ID string `arg:"positional,required"`
}

type tokenCmd struct {
	User   string        `arg:"positional,required"`
	Secret string        `arg:"--secret,env:JWT_SECRET" help:"HS256 secret the API verifies bearer tokens with"`
	Issuer string        `arg:"--issuer,env:JWT_ISSUER"`
	TTL    time.Duration `arg:"--ttl" default:"1h"`
}

type args struct {
	API   string `arg:"--api,env:NOTES_API" default:"http://localhost:8080" help:"base URL of the note API"`
	Token string `arg:"--token,env:NOTES_TOKEN" help:"sent as the Authorization header"`

	List   *listCmd   `arg:"subcommand:list" help:"list notes"`
	Get    *getCmd    `arg:"subcommand:get" help:"show one note"`
	Create *createCmd `arg:"subcommand:create" help:"create a note"`
	Update *updateCmd `arg:"subcommand:update" help:"replace the text of a note"`
	Delete *deleteCmd `arg:"subcommand:delete" help:"delete a note"`
	Mint   *tokenCmd  `arg:"subcommand:token" help:"mint a development bearer token"`
}

func (args) Description() string {
	return "\nmanage notes through the note API\n"
}

func main() {
	var a args
	p := arg.MustParse(&a)
	if p.Subcommand() == nil {
		p.Fail("missing subcommand")
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(context.Background(), a, os.Stdout); err != nil {
		logger.Fatal("error", zap.Error(err))
	}
}

func run(ctx context.Context, a args, out io.Writer) error {
	if a.Mint != nil {
		generator, err := auth.NewJWTGenerator(a.Mint.Secret, a.Mint.Issuer, a.Mint.TTL)
		if err != nil {
			return err
		}
		token, err := generator.GenerateToken(a.Mint.User)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, token)
		return err
	}

	var opts []client.Option
	if a.Token != "" {
		opts = append(opts, client.WithTokenSource(client.StaticToken(a.Token)))
	}
	c := client.New(a.API, opts...)

	switch {
	case a.List != nil:
		notes, err := c.FetchNotes(ctx)
		if err != nil {
			return err
		}
		return printJSON(out, notes)
	case a.Get != nil:
		n, err := c.GetNote(ctx, a.Get.ID)
		if err != nil {
			return err
		}
		if n == nil {
			return fmt.Errorf("note %s not found", a.Get.ID)
		}
		return printJSON(out, n)
	case a.Create != nil:
		id := a.Create.ID
		if id == "" {
			id = uuid.NewString()
		}
		created, err := c.CreateNote(ctx, note.Note{ID: id, Text: a.Create.Text})
		if err != nil {
			return err
		}
		return printJSON(out, created)
	case a.Update != nil:
		updated, err := c.UpdateNote(ctx, a.Update.ID, a.Update.Text)
		if err != nil {
			return err
		}
		return printJSON(out, updated)
	case a.Delete != nil:
		return c.DeleteNote(ctx, a.Delete.ID)
	}
	return errors.New("missing subcommand")
}

func printJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
