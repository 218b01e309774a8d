package bot

// BotConfig represents the configuration for the bot
type BotConfig struct {
	// Only this Telegram user may use the bot; 0 allows anyone
	OwnerID int64
	// Long polling timeout in seconds
	PollTimeout int
	// Maximum number of rows in a search reply
	MaxSearchResults int
	// Longest query echoed back and longest card side in a search reply, in characters
	MaxQueryEcho  int
	MaxCellLength int
	// Most recent days listed on the statistics screen; 0 lists all that fit
	MaxStatsDays int
	// Keys per row of the virtual keyboard
	KeysPerRow int
	// File name of the chart document
	ChartFileName string
}

// DefaultConfig returns the default bot configuration
func DefaultConfig() *BotConfig {
	return &BotConfig{
		PollTimeout:      60,
		MaxSearchResults: 50,
		MaxQueryEcho:     64,
		MaxCellLength:    200,
		MaxStatsDays:     30,
		KeysPerRow:       6,
		ChartFileName:    "review-activity.html",
	}
}
