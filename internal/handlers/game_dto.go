package handlers

import (
	"fmt"
	"net/url"

	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/repository"
)

type NewGameDTO struct {
	Rows      int `schema:"rows,required"`
	Cols      int `schema:"cols,required"`
	MineCount int `schema:"mine_count,required"`
}

// ParseNewGameDTO reads board params from a query. A known "preset" wins
// over explicit dimensions.
func ParseNewGameDTO(src url.Values) (mines.Params, error) {
	if name := src.Get("preset"); name != "" {
		p, ok := mines.Presets[name]
		if !ok {
			return mines.Params{}, fmt.Errorf("unknown preset %q", name)
		}
		return p, nil
	}
	var dto NewGameDTO
	if err := newDecoder().Decode(&dto, src); err != nil {
		return mines.Params{}, err
	}
	return mines.Params(dto), nil
}

type Move string

const (
	MoveSelect Move = "select"
	MoveFlag   Move = "flag"
	MoveChord  Move = "chord"
)

type MoveDTO struct {
	Move Move `schema:"move,required"`
	Row  int  `schema:"row,required"`
	Col  int  `schema:"col,required"`
}

func ParseMoveDTO(src url.Values) (MoveDTO, error) {
	var dto MoveDTO
	if err := newDecoder().Decode(&dto, src); err != nil {
		return dto, err
	}
	switch dto.Move {
	case MoveSelect, MoveFlag, MoveChord:
		return dto, nil
	}
	return dto, fmt.Errorf("unknown move %q", dto.Move)
}

func (m MoveDTO) Apply(b *mines.Board) error {
	switch m.Move {
	case MoveSelect:
		return b.Select(m.Row, m.Col)
	case MoveFlag:
		return b.Flag(m.Row, m.Col)
	case MoveChord:
		return b.Chord(m.Row, m.Col)
	}
	return fmt.Errorf("unknown move %q", m.Move)
}

type GameSessionDTO struct {
	GameSessionID int64        `json:"game_session_id,string"`
	Rows          int          `json:"rows"`
	Cols          int          `json:"cols"`
	MineCount     int          `json:"mine_count"`
	Status        mines.Status `json:"status"`
	MinesLeft     int          `json:"mines_left"`
	Grid          mines.Grid   `json:"grid"`
	StartedAt     int64        `json:"started_at"`
	EndedAt       *int64       `json:"ended_at,omitempty"`
}

func NewGameSessionDTO(s *repository.GameSession, b *mines.Board) GameSessionDTO {
	var endedAt *int64
	if s.EndedAt != nil {
		e := s.EndedAt.UnixMilli()
		endedAt = &e
	}
	return GameSessionDTO{
		GameSessionID: s.GameSessionID,
		Rows:          b.Rows(),
		Cols:          b.Cols(),
		MineCount:     b.MineCount(),
		Status:        b.Status(),
		MinesLeft:     b.MinesLeft(),
		Grid:          b.PlayerGrid(),
		StartedAt:     s.StartedAt.UnixMilli(),
		EndedAt:       endedAt,
	}
}
