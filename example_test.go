package valchain_test

import (
	"fmt"

	vc "github.com/reoring/valchain"
	"github.com/reoring/valchain/rules"
)

type Order struct {
	ID    string
	Items []Item
	Ship  *Shipping
}

type Item struct {
	SKU string
	Qty int
}

type Shipping struct {
	Country string
	Notes   *string
}

var (
	orderID    = vc.Field("id", func(o Order) string { return o.ID })
	orderItems = vc.Field("items", func(o Order) []Item { return o.Items })
	orderShip  = vc.Field("shipping", func(o Order) *Shipping { return o.Ship })
	country    = vc.Field("country", func(s *Shipping) string { return s.Country })
)

func validateShipping(s *Shipping) vc.Reporter {
	return vc.Of(s).ValidateField(country.Satisfies(rules.OneOf([]string{"JP", "US"})))
}

func Example() {
	o := Order{
		ID:    "",
		Items: []Item{{SKU: "a", Qty: 1}, {SKU: "b", Qty: 0}},
		Ship:  &Shipping{Country: "FR"},
	}

	_, err := vc.Of(o).
		ValidateField(orderID.Satisfies(rules.NotBlank())).
		ValidateList(vc.EachIndexed(orderItems, func(c *vc.Constraints[Item]) {
			c.Add(func(i Item) bool { return i.Qty > 0 }, "qty must be positive")
		})).
		Nest(orderShip.Nest(validateShipping)).
		Resolve()

	if ve, ok := vc.AsValidationError(err); ok {
		for _, is := range ve.Issues() {
			fmt.Printf("%s: %s\n", is.Path, is.Message)
		}
	}
	// Output:
	// /id: may not be blank
	// /items/1: qty must be positive
	// /shipping/country: must be one of JP, US
}

func ExampleValidator_Resolve() {
	o, err := vc.Of(Order{ID: "o-1", Items: []Item{{SKU: "a", Qty: 2}}}).
		ValidateField(orderID.Satisfies(rules.NotBlank())).
		ValidateListOptional(vc.Each(orderItems, func(c *vc.Constraints[Item]) {
			c.Use(vc.Constraint[Item]{Check: func(i Item) bool { return i.Qty > 0 }, Message: "qty must be positive"})
		})).
		Resolve()

	fmt.Println(o.ID, err)
	// Output: o-1 <nil>
}

func ExampleProjection_Nest() {
	o := Order{ID: "o-1", Ship: &Shipping{Country: "DE"}}

	vs := vc.Of(o).Nest(orderShip.Nest(validateShipping)).Violations()

	fmt.Println(vs[0])
	// Output: shipping{country[must be one of JP, US]}
}

func ExampleEach() {
	vs := vc.Of(Order{Items: []Item{{Qty: -1}, {Qty: 3}, {Qty: -2}}}).
		ValidateList(vc.Each(orderItems, func(c *vc.Constraints[Item]) {
			c.AddFunc(func(i Item) []string {
				if i.Qty < 0 {
					return []string{fmt.Sprintf("qty %d is negative", i.Qty)}
				}
				return nil
			})
		})).
		Violations()

	fmt.Println(vs[0])
	// Output: items[qty -1 is negative; qty -2 is negative]
}
