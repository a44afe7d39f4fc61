package connection

import (
	mb "github.com/saeidalz13/battleship-terminal/models/battleship"
)

type RespSpectateWelcome struct {
	GameUuid  string   `json:"game_uuid"`
	MapHeight int      `json:"map_height"`
	MapWidth  int      `json:"map_width"`
	Players   []string `json:"players"`
	Turn      int      `json:"turn"`
}

func NewRespSpectateWelcome(game *mb.Game) RespSpectateWelcome {
	resp := RespSpectateWelcome{
		GameUuid:  game.Uuid,
		MapHeight: game.MapHeight,
		MapWidth:  game.MapWidth,
		Turn:      game.Turn,
	}
	for _, player := range game.Players {
		if player != nil {
			resp.Players = append(resp.Players, player.Name)
		}
	}
	return resp
}

type RespShot struct {
	GameUuid string `json:"game_uuid"`
	Shooter  string `json:"shooter"`
	Row      int    `json:"row"`
	Col      int    `json:"col"`
	Hit      bool   `json:"hit"`
	Sunk     bool   `json:"sunk"`
	ShipSize int    `json:"ship_size,omitempty"`
	// alive ships per size for the human and the AI, index is size-1
	AliveBySize [2][]int `json:"alive_by_size"`
}

func NewRespShot(game *mb.Game, record mb.ShotRecord) RespShot {
	return RespShot{
		GameUuid:    game.Uuid,
		Shooter:     game.Players[record.Shooter].Name,
		Row:         record.Row,
		Col:         record.Col,
		Hit:         record.Hit,
		Sunk:        record.Sunk,
		ShipSize:    record.ShipSize,
		AliveBySize: game.CountAliveBySize(),
	}
}

type RespGameOver struct {
	GameUuid string `json:"game_uuid"`
	Winner   string `json:"winner"`
	Turns    int    `json:"turns"`
}

func NewRespGameOver(game *mb.Game) RespGameOver {
	resp := RespGameOver{GameUuid: game.Uuid, Turns: game.Turn}
	if winner := game.WinnerPlayer(); winner != nil {
		resp.Winner = winner.Name
	}
	return resp
}

type RespErr struct {
	ErrorDetails string `json:"error_details,omitempty"`
	Message      string `json:"message,omitempty"`
}

func NewRespErr(errorDetails, message string) *RespErr {
	return &RespErr{
		ErrorDetails: errorDetails,
		Message:      message,
	}
}
