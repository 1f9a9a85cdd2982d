package catalog

type OrderStatus string

const (
	OrderNew        OrderStatus = "New"
	OrderCooking    OrderStatus = "Cooking"
	OrderDelivering OrderStatus = "Delivering"
	OrderDelivered  OrderStatus = "Delivered"
)

// OrderStatuses lists statuses in the order an order moves through them.
var OrderStatuses = []OrderStatus{OrderNew, OrderCooking, OrderDelivering, OrderDelivered}
