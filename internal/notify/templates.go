package notify

import (
	"fmt"

	"registrar/pkg/email"
)

// ServiceAdded builds the operator notification for a newly added service.
func ServiceAdded(recipient, orgName, serviceID, serviceType string) Email {
	first := email.DisplayName(recipient)
	return Email{
		To:      []string{recipient},
		Subject: fmt.Sprintf("Service %s added to %s", serviceID, orgName),
		Text: fmt.Sprintf(
			"Hi %s,\n\nA new service (%s, type %s) was added to %s. "+
				"It stays inactive until activated by a network operator.\n",
			first, serviceID, serviceType, orgName),
	}
}

// ServicesActivated builds the operator notification for activated services.
func ServicesActivated(recipient, orgName string, serviceIDs []string) Email {
	first := email.DisplayName(recipient)
	return Email{
		To:      []string{recipient},
		Subject: fmt.Sprintf("Services activated for %s", orgName),
		Text: fmt.Sprintf(
			"Hi %s,\n\nThe following services of %s are now active: %v\n",
			first, orgName, serviceIDs),
	}
}

// ServicesDeactivated builds the operator notification for deactivated
// services.
func ServicesDeactivated(recipient, orgName string, serviceIDs []string) Email {
	first := email.DisplayName(recipient)
	return Email{
		To:      []string{recipient},
		Subject: fmt.Sprintf("Services deactivated for %s", orgName),
		Text: fmt.Sprintf(
			"Hi %s,\n\nThe following services of %s were deactivated: %v\n",
			first, orgName, serviceIDs),
	}
}

// ServiceRemoved builds the operator notification for a removed service.
func ServiceRemoved(recipient, orgName, serviceID string) Email {
	first := email.DisplayName(recipient)
	return Email{
		To:      []string{recipient},
		Subject: fmt.Sprintf("Service %s removed from %s", serviceID, orgName),
		Text: fmt.Sprintf(
			"Hi %s,\n\nService %s was removed from %s.\n",
			first, serviceID, orgName),
	}
}
