package email

type Template string

const (
	TemplateWelcome  Template = "welcome"
	TemplateReminder Template = "reminder"
)
