package claim

import (
	"fmt"

	"reharvest-backend/entities"
	"reharvest-backend/internal/utils/mailing"
)

type (
	// PickupNotifier delivers pickup details to the consumer after a
	// successful claim. Delivery is best-effort; the claim outcome does
	// not depend on it.
	PickupNotifier interface {
		SendPickupDetails(toEmail string, listing *entities.FoodListing) error
	}

	mailNotifier struct{}
)

func NewMailNotifier() PickupNotifier {
	return &mailNotifier{}
}

func (n *mailNotifier) SendPickupDetails(toEmail string, listing *entities.FoodListing) error {
	subject := fmt.Sprintf("Pickup details for %s", listing.Title)
	body := fmt.Sprintf(
		"<h3>Your claim is in!</h3>"+
			"<p><b>%s</b></p>"+
			"<p>Pickup location: %s</p>"+
			"<p>Instructions: %s</p>"+
			"<p>Available until: %s</p>",
		listing.Title,
		listing.PickupLocation,
		listing.PickupInstructions,
		listing.AvailableUntil.Format("Mon, 02 Jan 2006 15:04"),
	)
	return mailing.SendMail(toEmail, subject, body)
}
