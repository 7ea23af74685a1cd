package report

// BadgePlaceholder is replaced with the badge markdown in the README template.
const BadgePlaceholder = "$BADGE"

const reportTemplate = "## {{.Title}}\n\n{{.Badge}}\n\n```\n{{.Badge}}\n```\n"
