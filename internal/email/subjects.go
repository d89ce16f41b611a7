package email

const (
	subjectAdminAlertFmt        = "New Quote Request - %s"
	subjectCustomerConfirmation = "Quote Request Received - Bhavya Steel Industries"
)
