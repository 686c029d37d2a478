package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case Game:
		o.printGame(v)
	case MatchmakingStatus:
		o.printMatchmakingStatus(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	LookingForGame bool      `json:"looking_for_game"`
	CreatedAt      time.Time `json:"created_at"`
}

// Game response type
type Game struct {
	ID            string   `json:"id"`
	Players       []string `json:"players"`
	CurrentPlayer *string  `json:"current_player"`
	CurrentNumber int      `json:"current_number"`
	Status        string   `json:"status"`
	Winner        *string  `json:"winner"`
}

// MatchmakingStatus response type
type MatchmakingStatus struct {
	Searching bool  `json:"searching"`
	Game      *Game `json:"game,omitempty"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	lookingStr := "no"
	if p.LookingForGame {
		lookingStr = "yes"
	}
	fmt.Printf("Player: %s (%s)\n", p.Name, p.ID)
	fmt.Printf("Looking for game: %s\n", lookingStr)
}

func (o *Output) printGame(g Game) {
	fmt.Printf("Game: %s\n", g.ID)
	fmt.Printf("Status: %s\n", g.Status)
	fmt.Printf("Number: %d\n", g.CurrentNumber)
	fmt.Printf("Players: %s\n", strings.Join(g.Players, ", "))
	if g.CurrentPlayer != nil {
		fmt.Printf("Current turn: %s\n", *g.CurrentPlayer)
	}
	if g.Winner != nil {
		fmt.Printf("Winner: %s\n", *g.Winner)
	}
}

func (o *Output) printMatchmakingStatus(m MatchmakingStatus) {
	if m.Searching {
		fmt.Println("Searching for an opponent...")
		return
	}
	if m.Game != nil {
		o.printGame(*m.Game)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
