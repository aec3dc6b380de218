// Package terminal drives a session from a line-oriented text interface.
package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"Blogsync/internal/core/mutations"
	"Blogsync/internal/core/posts"
	"Blogsync/internal/core/status"
	"Blogsync/internal/session"
)

const prompt = "> "

// errQuit ends Run without an error
var errQuit = errors.New("quit")

// REPL reads one command per line and renders the session state as text
type REPL struct {
	session *session.Session
	in      *bufio.Scanner
	out     io.Writer
	userID  int
	logger  *slog.Logger
}

// New creates a REPL over s. userID is attached to posts created with "new".
func New(s *session.Session, in io.Reader, out io.Writer, userID int, logger *slog.Logger) *REPL {
	if logger == nil {
		logger = slog.Default()
	}
	return &REPL{
		session: s,
		in:      bufio.NewScanner(in),
		out:     out,
		userID:  userID,
		logger:  logger,
	}
}

// Run fetches the collection, then processes commands until quit or EOF
func (r *REPL) Run(ctx context.Context) error {
	unsubscribe := r.session.Tracker().Subscribe(func(tr status.Transition) {
		if tr.Op == status.List && tr.To == status.Pending {
			r.printf("Loading posts...\n")
		}
	})
	defer unsubscribe()

	r.refresh(ctx)

	for {
		r.printf("%s", prompt)
		line, ok := r.readLine()
		if !ok {
			r.printf("\n")
			return r.in.Err()
		}

		if err := r.Exec(ctx, line); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// Exec runs a single command line
func (r *REPL) Exec(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	name, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(name) {
	case "list", "ls":
		r.list()
	case "more":
		r.more()
	case "scroll":
		r.scroll(rest)
	case "refresh":
		r.refresh(ctx)
	case "new":
		r.create(ctx, rest)
	case "edit":
		r.edit(ctx, rest)
	case "put":
		r.put(ctx, rest)
	case "delete", "rm":
		r.delete(ctx, rest)
	case "status":
		r.status()
	case "help", "?":
		r.help()
	case "quit", "exit":
		return errQuit
	default:
		r.printf("unknown command %q, type help\n", name)
	}
	return nil
}

func (r *REPL) list() {
	if r.session.Status(status.List) == status.Pending {
		r.printf("Loading posts...\n")
		return
	}

	revealed := r.session.Posts()
	if len(revealed) == 0 {
		r.printf("no posts\n")
		return
	}

	for i, p := range revealed {
		r.printf("%3d. [%s] %s\n", i, p.ID, p.Title)
		if p.Body != "" {
			r.printf("     %s\n", strings.ReplaceAll(p.Body, "\n", "\n     "))
		}
	}
	r.printf("showing %d of %d (page %d)\n",
		len(revealed), r.session.Collection().Len(), r.session.View().Page())
}

func (r *REPL) more() {
	n := r.session.LoadMore()
	r.reportAppended(n)
}

func (r *REPL) scroll(arg string) {
	position, err := strconv.Atoi(arg)
	if err != nil {
		r.printf("usage: scroll <index>\n")
		return
	}
	r.reportAppended(r.session.Scrolled(position))
}

func (r *REPL) reportAppended(n int) {
	if n == 0 {
		r.printf("nothing more to show\n")
		return
	}
	r.printf("revealed %d more, showing %d\n", n, r.session.View().Len())
}

func (r *REPL) refresh(ctx context.Context) {
	result := r.session.Refresh(ctx)
	r.printf("list %s\n", result)
	if result == status.Succeeded {
		r.list()
	}
}

func (r *REPL) create(ctx context.Context, arg string) {
	title, body, ok := splitTitleBody(arg)
	if !ok {
		r.printf("usage: new <title> | <body>\n")
		return
	}

	result := r.session.Create(ctx, posts.CreatePostRequest{
		Title:  title,
		Body:   body,
		UserID: r.userID,
	})
	r.printf("create %s\n", result)
}

func (r *REPL) edit(ctx context.Context, arg string) {
	idArg, rest, _ := strings.Cut(arg, " ")
	post, ok := r.find(idArg)
	if !ok {
		return
	}

	req, err := parsePatch(rest)
	if err != nil {
		r.printf("%v\nusage: edit <id> [title=<title>] [body=<body>]\n", err)
		return
	}

	r.printf("patch %s\n", r.session.Patch(ctx, post.ID, req))
}

func (r *REPL) put(ctx context.Context, arg string) {
	idArg, rest, _ := strings.Cut(arg, " ")
	post, ok := r.find(idArg)
	if !ok {
		return
	}

	title, body, ok := splitTitleBody(rest)
	if !ok {
		r.printf("usage: put <id> <title> | <body>\n")
		return
	}

	result := r.session.Put(ctx, post.ID, posts.PutPostRequest{
		ID:     post.ID,
		Title:  title,
		Body:   body,
		UserID: post.UserID,
	})
	r.printf("put %s\n", result)
}

func (r *REPL) delete(ctx context.Context, arg string) {
	post, ok := r.find(arg)
	if !ok {
		return
	}

	confirmation := r.session.RequestDelete(post)
	switch confirmation.Resolve(ctx, mutations.ConfirmerFunc(r.confirm)) {
	case mutations.Confirmed:
		r.printf("delete %s\n", r.session.Status(status.Delete))
	default:
		r.printf("delete cancelled\n")
	}
}

// confirm asks on the same input stream the commands come from
func (r *REPL) confirm(_ context.Context, p mutations.Prompt) (bool, error) {
	r.printf("%s\n%s\n[%s/%s] (y to %s): ", p.Title, p.Message, p.Cancel, p.Confirm, strings.ToLower(p.Confirm))

	answer, ok := r.readLine()
	if !ok {
		if err := r.in.Err(); err != nil {
			return false, err
		}
		return false, io.ErrUnexpectedEOF
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes", strings.ToLower(p.Confirm):
		return true, nil
	default:
		return false, nil
	}
}

func (r *REPL) status() {
	for _, op := range status.Ops {
		r.printf("%-7s %s\n", op, r.session.Status(op))
	}
}

func (r *REPL) help() {
	r.printf(`commands:
  list                          show revealed posts
  more                          reveal the next page
  scroll <index>                report the last visible index
  refresh                       fetch all posts again
  new <title> | <body>          create a post
  edit <id> [title=..] [body=..]  patch a post
  put <id> <title> | <body>     replace a post
  delete <id>                   delete a post after confirmation
  status                        show request status per operation
  quit                          exit
`)
}

func (r *REPL) find(idArg string) (posts.Post, bool) {
	id := posts.PostID(strings.TrimSpace(idArg))
	if id.IsZero() {
		r.printf("missing post id\n")
		return posts.Post{}, false
	}

	post, ok := r.session.Collection().Find(id)
	if !ok {
		r.printf("post %s not found\n", id)
		return posts.Post{}, false
	}
	return post, true
}

func (r *REPL) readLine() (string, bool) {
	if !r.in.Scan() {
		return "", false
	}
	return r.in.Text(), true
}

func (r *REPL) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(r.out, format, args...); err != nil {
		r.logger.Debug("[TERMINAL] write failed", "error", err)
	}
}

// splitTitleBody parses "<title> | <body>"
func splitTitleBody(s string) (title, body string, ok bool) {
	title, body, found := strings.Cut(s, "|")
	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)
	if !found || title == "" || body == "" {
		return "", "", false
	}
	return title, body, true
}

// parsePatch reads title=... and body=... fields. A field value runs until the
// next recognised key, so values may contain spaces.
func parsePatch(s string) (posts.PatchPostRequest, error) {
	var req posts.PatchPostRequest
	var current *string
	var parts []string

	flush := func() {
		if current != nil {
			v := strings.Join(parts, " ")
			*current = v
		}
		parts = parts[:0]
	}

	for _, field := range strings.Fields(s) {
		key, value, found := strings.Cut(field, "=")
		if found && (key == "title" || key == "body") {
			flush()
			target := new(string)
			if key == "title" {
				req.Title = target
			} else {
				req.Body = target
			}
			current = target
			if value != "" {
				parts = append(parts, value)
			}
			continue
		}
		if current == nil {
			return posts.PatchPostRequest{}, fmt.Errorf("unexpected %q", field)
		}
		parts = append(parts, field)
	}
	flush()

	if req.IsEmpty() {
		return posts.PatchPostRequest{}, errors.New("nothing to change")
	}
	return req, nil
}
