package notify

import (
	"fmt"
	"strings"
	"time"
)

const datetimeLayout = "Monday, January 2, 2006 at 3:04 PM MST"

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return "to be confirmed"
	}
	return t.Format(datetimeLayout)
}

func formatUSD(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

func bookingTeamHTML(n BookingNotification) string {
	trip := "One way"
	if n.IsRoundTrip {
		trip = "Round trip"
	}

	var b strings.Builder
	b.WriteString("<h1>🚗 NEW BOOKING CONFIRMED</h1>")
	b.WriteString("<p>CALI GOLD DRIVE - Premium Transportation Service</p>")
	fmt.Fprintf(&b, "<h2>💳 PAYMENT SUCCESSFUL</h2><p>Total Amount: <strong>%s</strong><br>Payment ID: %s</p>",
		formatUSD(n.TotalAmount), n.PaymentIntentID)
	b.WriteString("<h3>👤 Customer</h3>")
	fmt.Fprintf(&b, "<p>%s %s<br>%s<br>%s<br>Passengers: %d</p>",
		n.FirstName, n.LastName, n.Email, n.Phone, n.PassengerCount)
	b.WriteString("<h3>📍 Trip</h3>")
	fmt.Fprintf(&b, "<p>Reference: %s<br>Pickup: %s<br>Dropoff: %s<br>When: %s<br>%s, %s, %d hour(s)<br>Vehicle: %s</p>",
		n.Reference, n.PickupLocation, n.DropoffLocation, formatDateTime(n.PickupDateTime),
		trip, n.ServiceType, n.DurationHours, n.VehicleName)
	return b.String()
}

func bookingCustomerHTML(n BookingNotification) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h1>Thank you, %s!</h1>", n.FirstName)
	fmt.Fprintf(&b, "<p>Your CALI GOLD DRIVE booking <strong>%s</strong> is confirmed.</p>", n.Reference)
	fmt.Fprintf(&b, "<p>Pickup: %s<br>Dropoff: %s<br>When: %s<br>Vehicle: %s</p>",
		n.PickupLocation, n.DropoffLocation, formatDateTime(n.PickupDateTime), n.VehicleName)
	fmt.Fprintf(&b, "<p>Amount paid: <strong>%s</strong> (payment %s)</p>", formatUSD(n.TotalAmount), n.PaymentIntentID)
	b.WriteString("<p>We look forward to driving you.</p>")
	return b.String()
}

func contactTeamHTML(n ContactNotification) string {
	var b strings.Builder
	b.WriteString("<h1>📧 New contact form submission</h1>")
	fmt.Fprintf(&b, "<p>From: %s &lt;%s&gt;<br>Phone: %s<br>Submitted: %s</p>",
		n.Name, n.Email, n.Phone, n.SubmittedAt.Format(time.RFC1123))
	fmt.Fprintf(&b, "<h3>%s</h3><p>%s</p>", n.Subject, n.Body)
	return b.String()
}

func contactCustomerHTML(n ContactNotification) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h1>Thank you for reaching out, %s!</h1>", n.Name)
	b.WriteString("<p>We received your message and the CALI GOLD DRIVE team will get back to you shortly.</p>")
	fmt.Fprintf(&b, "<blockquote>%s</blockquote>", n.Body)
	return b.String()
}
