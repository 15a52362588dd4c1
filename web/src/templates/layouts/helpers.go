package layouts

// AppName is shown in page titles.
const AppName = "Dashview"

// CalculateTitle handles the conditional logic for the page title.
func CalculateTitle(title string) string {
	if title != "" {
		return title + " - " + AppName
	}
	return AppName
}
