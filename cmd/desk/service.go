package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aswin-roy/ladybird-desk/internal/catalog"
	"github.com/aswin-roy/ladybird-desk/internal/orders"
	"github.com/aswin-roy/ladybird-desk/internal/sales"
	"github.com/aswin-roy/ladybird-desk/internal/search"
	"github.com/aswin-roy/ladybird-desk/pkg/enums"
	pkgerrors "github.com/aswin-roy/ladybird-desk/pkg/errors"
	"github.com/aswin-roy/ladybird-desk/pkg/logger"
	"github.com/aswin-roy/ladybird-desk/pkg/models"
)

const deliveryDateLayout = "2006-01-02"

// orderDirectory is the slice of the backend client the desk needs for
// browsing and cancelling stored orders.
type orderDirectory interface {
	ListOrders(ctx context.Context) ([]models.Order, error)
	DeleteOrder(ctx context.Context, backendID string) error
}

// Desk is the interactive sales counter session. It reads one command per
// line and drives the search controller, the drafts, and the submitters.
type Desk struct {
	in   io.Reader
	out  io.Writer
	logg *logger.Logger

	search  *search.Controller
	catalog *catalog.Store
	dir     orderDirectory

	sale    *sales.Draft
	saleSub *sales.Submitter

	order    *orders.Draft
	orderSub *orders.Submitter
}

// DeskParams wires a Desk.
type DeskParams struct {
	In  io.Reader
	Out io.Writer

	Logger  *logger.Logger
	Search  *search.Controller
	Catalog *catalog.Store
	Orders  orderDirectory

	SaleDraft      *sales.Draft
	SaleSubmitter  *sales.Submitter
	OrderDraft     *orders.Draft
	OrderSubmitter *orders.Submitter
}

// NewDesk builds the desk session.
func NewDesk(params DeskParams) (*Desk, error) {
	if params.In == nil || params.Out == nil {
		return nil, fmt.Errorf("desk requires input and output streams")
	}
	if params.Search == nil || params.Catalog == nil {
		return nil, fmt.Errorf("desk requires the search controller and catalog store")
	}
	if params.SaleSubmitter == nil || params.OrderSubmitter == nil {
		return nil, fmt.Errorf("desk requires both submitters")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("desk requires the order directory")
	}
	return &Desk{
		in:       params.In,
		out:      params.Out,
		logg:     params.Logger,
		search:   params.Search,
		catalog:  params.Catalog,
		dir:      params.Orders,
		sale:     params.SaleDraft,
		saleSub:  params.SaleSubmitter,
		order:    params.OrderDraft,
		orderSub: params.OrderSubmitter,
	}, nil
}

// Run processes commands until EOF, "quit", or context cancellation.
func (d *Desk) Run(ctx context.Context) error {
	if d.logg != nil {
		d.logg.Info(ctx, "desk session started")
	}
	d.printf("ladybird desk ready, type 'help' for commands")
	scanner := bufio.NewScanner(d.in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		cmd, rest, _ := strings.Cut(line, " ")
		if cmd == "quit" || cmd == "exit" {
			return nil
		}
		d.dispatch(ctx, cmd, strings.TrimSpace(rest))
	}
	return scanner.Err()
}

func (d *Desk) dispatch(ctx context.Context, cmd, rest string) {
	var err error
	switch cmd {
	case "help":
		d.printHelp()
	case "find":
		d.search.SetQuery(rest)
	case "pick":
		err = d.pickSuggestion(rest)
	case "who":
		d.printCustomer()
	case "products":
		d.printProducts(rest)
	case "add":
		err = d.addToCart(rest)
	case "qty":
		err = d.changeQuantity(rest)
	case "drop":
		err = d.dropLine(rest)
	case "cart":
		d.printCart()
	case "pay":
		err = d.setPayment(rest)
	case "paid":
		err = d.setPaidAmount(rest)
	case "sell":
		err = d.submitSale(ctx)
	case "desc":
		d.order.SetItemDescription(rest)
	case "status":
		err = d.setStatus(rest)
	case "due":
		err = d.setDeliveryDate(rest)
	case "assign":
		err = d.addAssignment(rest)
	case "book":
		err = d.submitOrder(ctx)
	case "orders":
		err = d.printOrders(ctx)
	case "void":
		err = d.voidOrder(ctx, rest)
	case "reload":
		err = d.catalog.Load(ctx)
	default:
		d.printf("unknown command %q, type 'help'", cmd)
	}
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			d.printf("error: %s", typed.UserMessage())
		} else {
			d.printf("error: %v", err)
		}
	}
}

func (d *Desk) printHelp() {
	d.printf(`customer: find <query> | pick <n> | who
sale:     products [query] | add <id> | qty <id> <delta> | drop <id> | cart | pay <Cash|Card|UPI> | paid <amount> | sell
order:    desc <text> | status <status> | due <yyyy-mm-dd> | assign <worker> <task> <commission> | book
ledger:   orders | void <order-id>
other:    reload | quit`)
}

func (d *Desk) pickSuggestion(arg string) error {
	index, err := strconv.Atoi(arg)
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "pick takes a suggestion number")
	}
	snap := d.search.Snapshot()
	if index < 1 || index > len(snap.Suggestions) {
		return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("no suggestion %d", index))
	}
	d.search.Select(snap.Suggestions[index-1])
	return nil
}

func (d *Desk) printCustomer() {
	snap := d.search.Snapshot()
	switch snap.Phase {
	case search.PhaseResolved:
		d.printf("customer: %s (%s)", snap.Selected.Name, snap.Selected.Phone)
	case search.PhaseSuggesting:
		for i, customer := range snap.Suggestions {
			d.printf("%d. %s (%s)", i+1, customer.Name, customer.Phone)
		}
	case search.PhaseNoMatch:
		d.printf("no customer matches %q", snap.Query)
	case search.PhasePending:
		d.printf("searching...")
	default:
		d.printf("no customer selected, sale goes to walk-in")
	}
}

func (d *Desk) printProducts(query string) {
	for _, product := range d.catalog.SearchProducts(query) {
		d.printf("%d. %s [%s] %s x%d", product.Display, product.Name, product.SKU, product.UnitPrice.StringFixed(2), product.Stock)
	}
}

func (d *Desk) addToCart(arg string) error {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "add takes a product id")
	}
	product, err := d.catalog.ProductByDisplay(id)
	if err != nil {
		return err
	}
	return d.sale.AddLine(product)
}

func (d *Desk) changeQuantity(arg string) error {
	fields := strings.Fields(arg)
	if len(fields) != 2 {
		return pkgerrors.New(pkgerrors.CodeValidation, "qty takes a product id and a delta")
	}
	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "qty takes a product id and a delta")
	}
	delta, err := strconv.Atoi(fields[1])
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "qty takes a product id and a delta")
	}
	product, err := d.catalog.ProductByDisplay(id)
	if err != nil {
		return err
	}
	return d.sale.ChangeQuantity(product.Backend, delta)
}

func (d *Desk) dropLine(arg string) error {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "drop takes a product id")
	}
	product, err := d.catalog.ProductByDisplay(id)
	if err != nil {
		return err
	}
	d.sale.RemoveLine(product.Backend)
	return nil
}

func (d *Desk) printCart() {
	if d.sale.Empty() {
		d.printf("cart is empty")
		return
	}
	for _, line := range d.sale.Lines() {
		total := line.Product.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		d.printf("%s x%d = %s", line.Product.Name, line.Quantity, total.StringFixed(2))
	}
	totals := d.sale.Totals()
	d.printf("subtotal %s  tax %s  total %s  (%s)",
		totals.Subtotal.StringFixed(2), totals.Tax.StringFixed(2), totals.Total.StringFixed(2), d.sale.PaymentMethod())
}

func (d *Desk) setPayment(arg string) error {
	method, err := enums.ParsePaymentMethod(arg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown payment method")
	}
	return d.sale.SetPaymentMethod(method)
}

func (d *Desk) setPaidAmount(arg string) error {
	if arg == "" {
		d.sale.ClearPaidAmount()
		return nil
	}
	amount, err := decimal.NewFromString(arg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "paid takes an amount")
	}
	return d.sale.SetPaidAmount(amount)
}

func (d *Desk) submitSale(ctx context.Context) error {
	d.sale.SetCustomer(d.search.Selected())
	outcome, err := d.saleSub.Submit(ctx, d.sale)
	if err != nil {
		return err
	}
	d.search.Clear()
	d.printf("sale recorded, %d entries on file", len(outcome.Entries))
	return nil
}

func (d *Desk) setStatus(arg string) error {
	status, err := enums.ParseOrderStatus(arg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown order status")
	}
	return d.order.SetStatus(status)
}

func (d *Desk) setDeliveryDate(arg string) error {
	if arg == "" {
		d.order.SetDeliveryDate(nil)
		return nil
	}
	date, err := time.Parse(deliveryDateLayout, arg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "due takes a yyyy-mm-dd date")
	}
	d.order.SetDeliveryDate(&date)
	return nil
}

func (d *Desk) addAssignment(arg string) error {
	fields := strings.Fields(arg)
	if len(fields) != 3 {
		return pkgerrors.New(pkgerrors.CodeValidation, "assign takes worker, task, and commission")
	}
	task, err := enums.ParseWorkerTask(fields[1])
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown task")
	}
	commission, err := decimal.NewFromString(fields[2])
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "commission must be a number")
	}
	return d.order.AddAssignment(orders.Assignment{
		WorkerName: fields[0],
		Task:       task,
		Commission: commission,
	})
}

func (d *Desk) printOrders(ctx context.Context) error {
	list, err := d.dir.ListOrders(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		d.printf("no orders on file")
		return nil
	}
	for _, order := range list {
		due := "-"
		if order.DeliveryDate != nil {
			due = order.DeliveryDate.Format(deliveryDateLayout)
		}
		d.printf("%d. %s | %s | %s | due %s", order.Display, order.CustomerName, order.ItemDescription, order.Status, due)
	}
	return nil
}

func (d *Desk) voidOrder(ctx context.Context, arg string) error {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "void takes an order id")
	}
	list, err := d.dir.ListOrders(ctx)
	if err != nil {
		return err
	}
	for _, order := range list {
		if order.Display == id {
			if err := d.dir.DeleteOrder(ctx, order.Backend); err != nil {
				return err
			}
			d.printf("order %d voided", id)
			return nil
		}
	}
	return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("no order with id %d", id))
}

func (d *Desk) submitOrder(ctx context.Context) error {
	d.order.SetCustomer(d.search.Selected())
	outcome, err := d.orderSub.Submit(ctx, d.order)
	if err != nil {
		return err
	}
	d.search.Clear()
	d.printf("order recorded, %d orders on file", len(outcome.Orders))
	return nil
}

func (d *Desk) printf(format string, args ...any) {
	fmt.Fprintf(d.out, format+"\n", args...)
}
