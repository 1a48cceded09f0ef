package gateway

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Terminal presents the checkout on a text terminal. After the summary it
// reads one line:
//
//	<payment_id> <signature>   success (order id is the one shown)
//	cancel                     dismissal
//	fail [description]         failure event
type Terminal struct {
	loader loader
	in     *bufio.Reader
	out    io.Writer
}

type loader interface {
	Load(ctx context.Context) error
}

// NewTerminal uses loader for Load; in and out are the user's terminal.
func NewTerminal(l loader, in io.Reader, out io.Writer) *Terminal {
	br, ok := in.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(in)
	}
	return &Terminal{loader: l, in: br, out: out}
}

func (t *Terminal) Load(ctx context.Context) error {
	return t.loader.Load(ctx)
}

func (t *Terminal) Open(ctx context.Context, opts Options) (Outcome, error) {
	t.summary(opts)

	for {
		fmt.Fprint(t.out, "payment> ")
		line, err := readLine(ctx, t.in)
		if err != nil {
			return nil, err
		}

		fields := strings.Fields(line)
		switch {
		case len(fields) == 0:
			continue
		case strings.EqualFold(fields[0], "cancel"):
			return Dismissed{}, nil
		case strings.EqualFold(fields[0], "fail"):
			return Failed{Description: strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0]))}, nil
		case len(fields) == 2:
			return Succeeded{OrderID: opts.OrderID, PaymentID: fields[0], Signature: fields[1]}, nil
		default:
			fmt.Fprintln(t.out, "enter '<payment_id> <signature>', 'cancel' or 'fail [reason]'")
		}
	}
}

func (t *Terminal) summary(opts Options) {
	amount := decimal.New(opts.Amount, -2)
	fmt.Fprintf(t.out, "== %s ==\n", opts.Name)
	if opts.Description != "" {
		fmt.Fprintln(t.out, opts.Description)
	}
	fmt.Fprintf(t.out, "Order:    %s\n", opts.OrderID)
	fmt.Fprintf(t.out, "Amount:   %s %s\n", amount.StringFixed(2), opts.Currency)
	fmt.Fprintf(t.out, "Customer: %s", opts.Prefill.Name)
	if opts.Prefill.Email != "" {
		fmt.Fprintf(t.out, " <%s>", opts.Prefill.Email)
	}
	fmt.Fprintln(t.out)

	keys := make([]string, 0, len(opts.Notes))
	for k := range opts.Notes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(t.out, "%s: %s\n", k, opts.Notes[k])
	}
}

// readLine reads one line, returning early if ctx is cancelled. The reader
// goroutine is left to finish on its own in that case.
func readLine(ctx context.Context, r *bufio.Reader) (string, error) {
	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		s, err := r.ReadString('\n')
		ch <- result{s, err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.err != nil && (res.err != io.EOF || res.line == "") {
			return "", res.err
		}
		return strings.TrimSpace(res.line), nil
	}
}
