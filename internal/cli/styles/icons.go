package styles

// Nerd Font icons (requires a Nerd Font to display correctly)
const (
	IconVersion   = "\uf02b" // tag
	IconGitBranch = "\ue725" // git branch
	IconCalendar  = "\uf073" // calendar
	IconGithub    = "\uf09b" // github
	IconGo        = "\ue627" // go gopher

	IconCheck   = "\uf00c" // check
	IconX       = "\uf00d" // x
	IconWarning = "\uf071" // warning
	IconInfo    = "\uf05a" // info
	IconConfig  = "\ue615" // config
	IconFile    = "\uf15b" // file
	IconCode    = "\uf121" // code
	IconChip    = "\uf2db" // microchip
	IconEye     = "\uf06e" // eye

	IconCheckboxEmpty   = "\uf096" // unchecked
	IconCheckboxChecked = "\uf046" // checked

	IconCursor   = "\uf054" // chevron-right
	IconTree     = "\uf1bb" // tree
	IconExpand   = "\uf065" // expand
	IconCollapse = "\uf066" // compress
	IconLock     = "\uf023" // lock
	IconPin      = "\uf08d" // thumb-tack
	IconComment  = "\uf075" // comment
)
