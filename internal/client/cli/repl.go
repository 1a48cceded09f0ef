package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn and printFn are test seams for user-facing output. In tests,
// replace them with stubs.
var (
	printlnFn = fmt.Println
	printFn   = fmt.Print
)

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool
	status() string
	// afterCommand renders anything that became visible while the command
	// ran, such as the dashboard after a session appeared.
	afterCommand(ctx context.Context)

	Navigate(ctx context.Context, route string) error
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	AdminLogin(ctx context.Context) error
	Logout(ctx context.Context) error

	Products(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	Price(ctx context.Context, args []string) error
	Sort(ctx context.Context, args []string) error
	ClearFilters(ctx context.Context) error
	View(ctx context.Context, args []string) error
	Wish(ctx context.Context, args []string) error
	Wishlist(ctx context.Context) error

	Add(ctx context.Context, args []string) error
	Cart(ctx context.Context) error
	Increment(ctx context.Context, args []string) error
	Decrement(ctx context.Context, args []string) error
	Remove(ctx context.Context, args []string) error
	Quantity(ctx context.Context, args []string) error
	Checkout(ctx context.Context) error

	Orders(ctx context.Context) error
	Refresh(ctx context.Context) error
	Admin(ctx context.Context, args []string) error
	ToggleTheme(ctx context.Context) error
}

const (
	helpGuest = `Available commands:
  go <route>        navigate (/, /register, /login, /admin, /customer/dashboard, /orders, /admindashboard)
  register          create an account
  login             sign in as a customer
  admin-login       sign in as an administrator
  products [cat]    browse the catalog (categories: %s)
  theme             toggle dark mode
  exit | quit       leave the program`

	helpCustomer = `Available commands:
  go <route>            navigate
  products [cat|all]    load the catalog, optionally for one category
  search <text>         filter by name or description
  price <min> <max>     filter by price range
  sort <key>            default, price-low, price-high, name
  clear                 reset all filters
  view <id>             quick view of a product
  wish <id> | wishlist  toggle / list the wishlist
  add <id>              add a product to the cart
  cart                  show the cart
  inc|dec|rm <id>       change or remove a cart line
  qty <id> <n>          set a line quantity (0 removes)
  checkout              pay for the cart
  orders | refresh      order history / reload the current screen
  theme                 toggle dark mode
  logout                sign out
  exit | quit           leave the program`

	helpAdmin = `Available commands:
  admin                         list operations
  admin select <id|n>           open an operation
  admin set <field> <value>     fill a form field
  admin submit                  run the operation
  admin show | admin close      show the form / close it
  theme                         toggle dark mode
  logout                        sign out
  exit | quit                   leave the program`
)

// runREPL starts the read–eval–print loop of the storefront.
//
// It prints the prompt with the current status (route, user, cart badge),
// reads a line from reader, parses the first token as the command and
// dispatches to methods on 'a'. The loop exits on EOF, when ctx is
// cancelled, or when the user types "exit" or "quit".
//
// Errors returned by handlers are printed; their text is already the
// user-facing alert message. Handlers log their own diagnostics.
func runREPL(ctx context.Context, a execIface, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printFn(fmt.Sprintf("shop %s> ", a.status()))
		line, err := readLine(reader)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				printlnFn("Error:", err.Error())
			}
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		switch cmd {
		case "help", "?":
			printlnFn(helpFor(a))
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		report(dispatch(ctx, a, cmd, args))
		a.afterCommand(ctx)
	}
}

func helpFor(a execIface) string {
	switch {
	case a.isAdmin():
		return helpAdmin
	case a.isLoggedIn():
		return helpCustomer
	default:
		return fmt.Sprintf(helpGuest, strings.Join(categoryNames(), ", "))
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "go":
		if len(args) != 1 {
			return usage("go <route>")
		}
		return a.Navigate(ctx, args[0])
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	case "admin-login":
		return a.AdminLogin(ctx)
	case "logout":
		return a.Logout(ctx)

	case "products", "p":
		return a.Products(ctx, args)
	case "search":
		return a.Search(ctx, args)
	case "price":
		return a.Price(ctx, args)
	case "sort":
		return a.Sort(ctx, args)
	case "clear":
		return a.ClearFilters(ctx)
	case "view":
		return a.View(ctx, args)
	case "wish":
		return a.Wish(ctx, args)
	case "wishlist":
		return a.Wishlist(ctx)

	case "add":
		return a.Add(ctx, args)
	case "cart":
		return a.Cart(ctx)
	case "inc", "+":
		return a.Increment(ctx, args)
	case "dec", "-":
		return a.Decrement(ctx, args)
	case "rm", "remove":
		return a.Remove(ctx, args)
	case "qty":
		return a.Quantity(ctx, args)
	case "checkout", "pay":
		return a.Checkout(ctx)

	case "orders":
		return a.Orders(ctx)
	case "refresh":
		return a.Refresh(ctx)
	case "admin":
		return a.Admin(ctx, args)
	case "theme":
		return a.ToggleTheme(ctx)
	}
	return &userError{msg: fmt.Sprintf("Unknown command: %s (type 'help')", cmd)}
}

// report prints a handler error. Cancellation is silent; the loop notices
// it on the next iteration.
func report(err error) {
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	printlnFn("Error:", err.Error())
}
