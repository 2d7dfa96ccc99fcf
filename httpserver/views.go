package httpserver

import (
	"strconv"

	"github.com/refhub/order-management-backend/interfaces"
	"github.com/refhub/order-management-backend/order"
)

// View models passed to the HTML templates. All money values are
// preformatted to two decimal places so the templates stay dumb.

type loginView struct {
	Error string
}

type signupView struct {
	Error string
}

type stagingView struct {
	Name     string
	Price    string
	Quantity string
}

type itemView struct {
	ID        string
	Name      string
	UnitPrice string
	Quantity  int
	Subtotal  string
}

type orderEntryView struct {
	User              string
	Staging           stagingView
	Items             []itemView
	ShowPreview       bool
	TransportationFee string
	Total             string
	Error             string
	Notice            string
}

type orderRowView struct {
	ID          int64
	StaffName   string
	OrderDate   string
	Items       string
	TotalAmount string
	Status      string
}

type adminView struct {
	User        string
	Orders      []orderRowView
	FilterDate  string
	FilterStaff string
	Statuses    []string
	Error       string
}

func newOrderEntryView(user interfaces.UserID, draft *order.Draft) orderEntryView {
	staging := draft.Staging()
	view := orderEntryView{
		User:              user.String(),
		TransportationFee: order.TransportationFee.StringFixed(2),
		Total:             draft.Total().StringFixed(2),
		Staging: stagingView{
			Name: staging.Name,
		},
	}
	if staging.PriceValid {
		view.Staging.Price = staging.Price.String()
	}
	if staging.QuantityValid {
		view.Staging.Quantity = strconv.Itoa(staging.Quantity)
	}

	items := draft.Items()
	view.ShowPreview = draft.PreviewVisible() && len(items) > 0
	for _, item := range items {
		view.Items = append(view.Items, itemView{
			ID:        string(item.ID),
			Name:      item.Name,
			UnitPrice: item.UnitPrice.StringFixed(2),
			Quantity:  item.Quantity,
			Subtotal:  item.Subtotal().StringFixed(2),
		})
	}
	return view
}

func newAdminView(user interfaces.UserID, orders []interfaces.Order, filterDate, filterStaff string) adminView {
	view := adminView{
		User:        user.String(),
		FilterDate:  filterDate,
		FilterStaff: filterStaff,
		Statuses: []string{
			interfaces.StatusPending.String(),
			interfaces.StatusProcessed.String(),
			interfaces.StatusCompleted.String(),
		},
	}
	for _, o := range orders {
		view.Orders = append(view.Orders, orderRowView{
			ID:          o.ID,
			StaffName:   o.StaffName,
			OrderDate:   o.OrderDate,
			Items:       o.Items,
			TotalAmount: o.TotalAmount.StringFixed(2),
			Status:      o.Status.String(),
		})
	}
	return view
}
