package review

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/eccentric-easel/easel/internal/models"
)

// Reviewer decides whether a generated draft gets uploaded
type Reviewer interface {
	Review(ctx context.Context, draft models.Draft) (models.Decision, error)
}

// AutoAccept accepts every draft unchanged. Used when the pipeline is driven
// by a remote caller and nobody is at the terminal.
type AutoAccept struct{}

func (AutoAccept) Review(_ context.Context, draft models.Draft) (models.Decision, error) {
	return models.Decision{Kind: models.Accepted, Draft: draft}, nil
}

// Interactive asks an operator on a line-oriented terminal.
//
// A single edit pass ends the review: the edited draft is returned as Edited
// and uploaded without asking again.
type Interactive struct {
	in  *bufio.Reader
	out io.Writer
}

// NewInteractive reads answers from in and writes prompts to out
func NewInteractive(in io.Reader, out io.Writer) *Interactive {
	return &Interactive{in: bufio.NewReader(in), out: out}
}

func (r *Interactive) Review(ctx context.Context, draft models.Draft) (models.Decision, error) {
	fmt.Fprintln(r.out, "\nPlease review the following information:")
	fmt.Fprintf(r.out, "Name: %s\n", draft.Name)
	fmt.Fprintf(r.out, "Description: %s\n", draft.Description)
	fmt.Fprintf(r.out, "Price: %s\n", draft.PriceDollars())

	for {
		if err := ctx.Err(); err != nil {
			return models.Decision{}, err
		}

		choice, err := r.ask("\nDo you want to post this item? (accept/reject/edit): ")
		if err != nil {
			return models.Decision{}, err
		}

		switch strings.ToLower(choice) {
		case "accept", "yes", "y":
			return models.Decision{Kind: models.Accepted, Draft: draft}, nil
		case "reject", "no", "n":
			return models.Decision{Kind: models.Rejected, Draft: draft}, nil
		case "edit", "e":
			edited, err := r.edit(ctx, draft)
			if err != nil {
				return models.Decision{}, err
			}
			return models.Decision{Kind: models.Edited, Draft: edited}, nil
		default:
			fmt.Fprintln(r.out, "Invalid choice. Please enter 'accept', 'reject', or 'edit'.")
		}
	}
}

func (r *Interactive) edit(ctx context.Context, draft models.Draft) (models.Draft, error) {
	fmt.Fprintln(r.out, "\nEnter new values (or press Enter to keep current value):")

	name, err := r.ask(fmt.Sprintf("Name [%s]: ", draft.Name))
	if err != nil {
		return draft, err
	}
	if name != "" {
		draft.Name = name
	}

	description, err := r.ask(fmt.Sprintf("Description [%s]: ", draft.Description))
	if err != nil {
		return draft, err
	}
	if description != "" {
		draft.Description = description
	}

	for {
		if err := ctx.Err(); err != nil {
			return draft, err
		}

		price, err := r.ask(fmt.Sprintf("Price in dollars [%d]: ", draft.PriceCents/100))
		if err != nil {
			return draft, err
		}
		if price == "" {
			break
		}

		cents, err := ParseDollars(price)
		if err != nil {
			fmt.Fprintf(r.out, "%v\n", err)
			continue
		}
		draft.PriceCents = cents
		break
	}

	return draft, nil
}

// ask prints prompt and returns the next input line without surrounding space
func (r *Interactive) ask(prompt string) (string, error) {
	fmt.Fprint(r.out, prompt)

	line, err := r.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return "", models.NewError(models.IOError, "read input", fmt.Errorf("failed to read operator input: %w", err))
	}
	return strings.TrimSpace(line), nil
}

// ParseDollars parses a whole-dollar amount and returns it in cents
func ParseDollars(s string) (int64, error) {
	dollars, err := strconv.ParseInt(strings.TrimPrefix(strings.TrimSpace(s), "$"), 10, 64)
	if err != nil || dollars < 0 {
		return 0, models.Errorf(models.ValidationError, "parse price", "invalid price %q: enter a whole number of dollars", s)
	}
	return models.CentsFromDollars(dollars)
}
