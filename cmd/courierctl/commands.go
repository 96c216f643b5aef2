package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/polkiloo/courierdesk/internal/client"
	"github.com/polkiloo/courierdesk/internal/server/http/dto"
)

const defaultServer = "http://localhost:8080"

const usage = `usage: courierctl [-server URL] [-token TOKEN] <command> [args]

commands:
  submit      create an order
  track       show an order by identifier
  list        list all orders (admin)
  set-status  change order status (admin)
  stats       show order counters (admin)
  quote       preview a price
  ranges      show the price table
  login       obtain an admin token`

var errUsage = errors.New(usage)

type command func(ctx context.Context, api *client.HTTPClient, args []string, out io.Writer) error

var commands = map[string]command{
	"submit":     submitCmd,
	"track":      trackCmd,
	"list":       listCmd,
	"set-status": setStatusCmd,
	"stats":      statsCmd,
	"quote":      quoteCmd,
	"ranges":     rangesCmd,
	"login":      loginCmd,
}

func run(ctx context.Context, args []string, out, errOut io.Writer, getenv func(string) string) error {
	global := flag.NewFlagSet("courierctl", flag.ContinueOnError)
	global.SetOutput(io.Discard)

	server := global.String("server", envOr(getenv, "COURIER_API", defaultServer), "API base URL")
	token := global.String("token", getenv("COURIER_TOKEN"), "admin token")
	verbose := global.Bool("v", false, "log failed requests")

	if err := global.Parse(args); err != nil {
		return fmt.Errorf("%w\n\n%s", err, usage)
	}
	if global.NArg() == 0 {
		return errUsage
	}

	name := global.Arg(0)
	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("unknown command %q\n\n%s", name, usage)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: level}))

	api, err := client.NewHTTPClient(*server, logger)
	if err != nil {
		return err
	}
	if *token != "" {
		api.SetToken(*token)
	}

	return cmd(ctx, api, global.Args()[1:], out)
}

func envOr(getenv func(string) string, key, def string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return def
}

func newFlags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func submitCmd(ctx context.Context, api *client.HTTPClient, args []string, out io.Writer) error {
	fs := newFlags("submit")
	var req dto.CreateOrderRequest
	distance := fs.Float64("distance", -1, "distance in km")
	fs.StringVar(&req.FirstName, "first-name", "", "customer first name")
	fs.StringVar(&req.LastName, "last-name", "", "customer last name")
	fs.StringVar(&req.PhoneNumber, "phone", "", "customer phone number")
	fs.StringVar(&req.PackageName, "package", "", "package name")
	fs.StringVar(&req.PackageCode, "package-code", "", "package code")
	fs.StringVar(&req.PackageSize, "package-size", "", "package size")
	fs.StringVar(&req.PickupAddress, "pickup", "", "pickup address")
	fs.StringVar(&req.DeliveryAddress, "delivery", "", "delivery address")
	fs.BoolVar(&req.IsUrgent, "urgent", false, "urgent delivery")
	fs.StringVar(&req.DeliveryTime, "time", "", "preferred delivery time")
	fs.StringVar(&req.Notes, "notes", "", "notes for the courier")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *distance < 0 {
		return errors.New("submit: -distance is required and must not be negative")
	}
	req.Distance = distance

	order, err := api.CreateOrder(ctx, req)
	if err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	fmt.Fprintf(out, "order %s created, price %s\n", order.OrderID, formatMoney(order.Price))
	return nil
}

func trackCmd(ctx context.Context, api *client.HTTPClient, args []string, out io.Writer) error {
	if len(args) != 1 {
		return errors.New("track: expected exactly one order identifier")
	}
	order, err := api.TrackOrder(ctx, args[0])
	if err != nil {
		if client.IsNotFound(err) {
			return fmt.Errorf("order %s not found", args[0])
		}
		return fmt.Errorf("track: %w", err)
	}
	printOrder(out, order)
	return nil
}

func listCmd(ctx context.Context, api *client.HTTPClient, args []string, out io.Writer) error {
	orders, err := api.ListOrders(ctx)
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	if len(orders) == 0 {
		fmt.Fprintln(out, "no orders")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ORDER\tCUSTOMER\tPACKAGE\tDISTANCE\tURGENT\tPRICE\tSTATUS\tCREATED")
	for _, o := range orders {
		fmt.Fprintf(tw, "%s\t%s %s\t%s\t%g\t%t\t%s\t%s\t%s\n",
			o.OrderID, o.FirstName, o.LastName, o.PackageName, o.Distance, o.IsUrgent,
			formatMoney(o.Price), statusLabel(o.Status), o.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}

func setStatusCmd(ctx context.Context, api *client.HTTPClient, args []string, out io.Writer) error {
	if len(args) != 2 {
		return errors.New("set-status: expected <orderId> <status>")
	}
	order, err := api.UpdateStatus(ctx, args[0], args[1])
	if err != nil {
		return fmt.Errorf("set-status: %w", err)
	}
	fmt.Fprintf(out, "order %s is now %s\n", order.OrderID, statusLabel(order.Status))
	return nil
}

func statsCmd(ctx context.Context, api *client.HTTPClient, args []string, out io.Writer) error {
	stats, err := api.Stats(ctx)
	if err != nil {
		return fmt.Errorf("stats: %w", err)
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "total\t%d\n", stats.Total)
	fmt.Fprintf(tw, "active\t%d\n", stats.Active)
	fmt.Fprintf(tw, "new\t%d\n", stats.New)
	fmt.Fprintf(tw, "accepted\t%d\n", stats.Accepted)
	fmt.Fprintf(tw, "in transit\t%d\n", stats.InTransit)
	fmt.Fprintf(tw, "delivered\t%d\n", stats.Delivered)
	return tw.Flush()
}

func quoteCmd(ctx context.Context, api *client.HTTPClient, args []string, out io.Writer) error {
	fs := newFlags("quote")
	distance := fs.Float64("distance", -1, "distance in km")
	urgent := fs.Bool("urgent", false, "urgent delivery")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *distance < 0 {
		return errors.New("quote: -distance is required and must not be negative")
	}

	quote, err := api.Quote(ctx, *distance, *urgent)
	if err != nil {
		return fmt.Errorf("quote: %w", err)
	}
	fmt.Fprintf(out, "price %s", formatMoney(quote.Price))
	if quote.Range != nil {
		fmt.Fprintf(out, " (%s)", rangeLabel(*quote.Range))
	}
	fmt.Fprintln(out)
	return nil
}

func rangesCmd(ctx context.Context, api *client.HTTPClient, args []string, out io.Writer) error {
	ranges, err := api.Ranges(ctx)
	if err != nil {
		return fmt.Errorf("ranges: %w", err)
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DISTANCE\tREGULAR\tURGENT")
	for _, r := range ranges {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", rangeLabel(r), formatMoney(r.Regular), formatMoney(r.Urgent))
	}
	return tw.Flush()
}

func loginCmd(ctx context.Context, api *client.HTTPClient, args []string, out io.Writer) error {
	fs := newFlags("login")
	login := fs.String("login", "admin", "admin login")
	password := fs.String("password", "", "admin password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	token, err := api.Login(ctx, *login, *password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	fmt.Fprintln(out, token)
	return nil
}

func printOrder(out io.Writer, o *dto.OrderResponse) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "order\t%s\n", o.OrderID)
	fmt.Fprintf(tw, "status\t%s\n", statusLabel(o.Status))
	fmt.Fprintf(tw, "customer\t%s %s, %s\n", o.FirstName, o.LastName, o.PhoneNumber)
	fmt.Fprintf(tw, "package\t%s\n", packageLabel(o))
	fmt.Fprintf(tw, "from\t%s\n", o.PickupAddress)
	fmt.Fprintf(tw, "to\t%s\n", o.DeliveryAddress)
	fmt.Fprintf(tw, "distance\t%g km\n", o.Distance)
	fmt.Fprintf(tw, "urgent\t%t\n", o.IsUrgent)
	fmt.Fprintf(tw, "price\t%s\n", formatMoney(o.Price))
	if o.DeliveryTime != "" {
		fmt.Fprintf(tw, "delivery time\t%s\n", o.DeliveryTime)
	}
	if o.Notes != "" {
		fmt.Fprintf(tw, "notes\t%s\n", o.Notes)
	}
	fmt.Fprintf(tw, "created\t%s\n", o.CreatedAt.Local().Format("2006-01-02 15:04"))
	_ = tw.Flush()
}

func packageLabel(o *dto.OrderResponse) string {
	parts := []string{o.PackageName}
	if o.PackageCode != "" {
		parts = append(parts, "#"+o.PackageCode)
	}
	if o.PackageSize != "" {
		parts = append(parts, "("+o.PackageSize+")")
	}
	return strings.Join(parts, " ")
}

func statusLabel(status string) string {
	switch status {
	case "new":
		return "New"
	case "accepted":
		return "Accepted"
	case "in_transit":
		return "In transit"
	case "delivered":
		return "Delivered"
	}
	return status
}

func rangeLabel(r dto.RangeResponse) string {
	if r.Max == nil {
		return fmt.Sprintf("over %g km", r.Min)
	}
	return fmt.Sprintf("%g-%g km", r.Min, *r.Max)
}

func formatMoney(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
