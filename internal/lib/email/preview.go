package email

// PreviewData holds sample values for every template, keyed by template name.
var PreviewData = map[Template]map[string]string{
	TemplateWelcome: {
		"UserName": "John",
	},
	TemplateReminder: {
		"UserName":    "John",
		"Description": "Take vitamin C supplement",
		"DateTime":    "Mon, 01 Jan 2024 08:00 UTC",
	},
}
