package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	cerr "github.com/saeidalz13/battleship-terminal/internal/error"
	mb "github.com/saeidalz13/battleship-terminal/models/battleship"
)

const (
	welcomeTitle  = "Welcome to Battleships"
	msgFullScreen = "Please, make it full screen"

	titleYourShips  = "Your Ships"
	titleEnemyShips = "Enemy Ships"
	statsHeader     = "| Size | Alive | Dead |"

	// stats tables are hidden past this ship size, they would not fit
	maxStatsShipSize = 50
	statsGap         = 8

	bottomFieldLastRow = 26
)

var (
	styleDefault = tcell.StyleDefault
	styleSelect  = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
	styleShip    = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleHit     = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleMiss    = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	styleCursor  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleMissing = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleLabel   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
)

// putStr writes s starting at column x and returns the column after it.
func putStr(screen tcell.Screen, x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
	return x
}

func putCentered(screen tcell.Screen, lines []string) {
	width, height := screen.Size()
	for i, line := range lines {
		putStr(screen, width/2-runewidth.StringWidth(line)/2, height/2+i, line, styleDefault)
	}
}

func (a *App) Draw() {
	a.screen.Clear()

	switch a.state {
	case stateMenu:
		a.drawMenu()
	case stateNamePrompt:
		width, height := a.screen.Size()
		x := putStr(a.screen, width/2-len(MsgNamePrompt)/2, height/2, MsgNamePrompt, styleDefault)
		x = putStr(a.screen, x, height/2, string(a.name), styleDefault)
		a.screen.ShowCursor(x, height/2)
	case statePlaying:
		a.screen.HideCursor()
		a.drawGame()
	case stateMessage:
		a.screen.HideCursor()
		putCentered(a.screen, a.message)
	}

	a.screen.Show()
}

func (a *App) drawMenu() {
	a.screen.HideCursor()
	width, height := a.screen.Size()

	x := width/2 - len(welcomeTitle)/2
	putStr(a.screen, x, 1, strings.Repeat("#", len(welcomeTitle)), styleDefault)
	putStr(a.screen, x, 2, welcomeTitle, styleDefault)
	putStr(a.screen, x, 3, strings.Repeat("#", len(welcomeTitle)), styleDefault)

	for i, item := range a.menuItems {
		style := styleDefault
		if i == a.menuIndex {
			style = styleSelect
		}
		putStr(a.screen, width/2-len(item)/2, height/2-len(a.menuItems)/2+i, item, style)
	}
}

func (a *App) showStats() bool {
	return a.game.LongestShipSize <= maxStatsShipSize
}

// MinScreenSize is the smallest terminal the game screen fits in.
func (a *App) MinScreenSize() (int, int) {
	cellWidth := a.symbols.CellWidth()
	labelWidth := len(strconv.Itoa(a.game.MapWidth))
	fieldHalf := mb.WindowWidth * cellWidth / 2
	fieldSpan := (cellWidth + 1) * mb.WindowWidth

	// left labels plus the field
	half := max(fieldHalf+labelWidth, fieldSpan-fieldHalf)
	minHeight := bottomFieldLastRow + 1

	if a.showStats() {
		tableWidth := len(statsHeader)
		left := fieldHalf + labelWidth + tableWidth + statsGap
		right := fieldSpan - fieldHalf + statsGap + tableWidth
		half = max(left, right)
		minHeight = max(minHeight, statsTop(a.game.LongestShipSize)+a.game.LongestShipSize+4)
	}

	return 2*half + 1, minHeight
}

func (a *App) drawGame() {
	width, height := a.screen.Size()
	minWidth, minHeight := a.MinScreenSize()
	if width < minWidth || height < minHeight {
		putCentered(a.screen, []string{cerr.ConstErrConsoleTooSmall, msgFullScreen})
		return
	}

	human := a.game.Players[mb.HumanPlayerIndex]
	a.drawField(human.OwnField, width, height, true)
	a.drawField(human.TargetField, width, height, false)

	if a.showStats() {
		alive := a.game.CountAliveBySize()
		a.drawStats(a.game.Players[mb.HumanPlayerIndex], alive[mb.HumanPlayerIndex], width, true)
		a.drawStats(a.game.Players[mb.AIPlayerIndex], alive[mb.AIPlayerIndex], width, false)
	}
}

func (a *App) cellStyle(symbol string) tcell.Style {
	switch symbol {
	case a.symbols.Hit:
		return styleHit
	case a.symbols.Miss:
		return styleMiss
	case a.symbols.Ship:
		return styleShip
	case a.symbols.Missing:
		return styleMissing
	default:
		return styleDefault
	}
}

// drawField draws the visible window of field with column indices above
// it and row indices to its left.
func (a *App) drawField(field *mb.Field, width, height int, alignTop bool) {
	labelWidth := len(strconv.Itoa(a.game.MapWidth))

	for cell := range field.RenderCoordinates(a.symbols, height, width, alignTop) {
		if cell.IsCursor {
			putStr(a.screen, cell.ScreenCol, cell.ScreenRow, a.symbols.Cursor, styleCursor)
		} else {
			putStr(a.screen, cell.ScreenCol, cell.ScreenRow, cell.Symbol, a.cellStyle(cell.Symbol))
		}

		if cell.Row == field.ViewportTop {
			putStr(a.screen, cell.ScreenCol, cell.ScreenRow-1, fmt.Sprintf("%0*d", labelWidth, cell.Col), styleLabel)
		}
		if cell.Col == field.ViewportLeft {
			label := strconv.Itoa(cell.Row)
			putStr(a.screen, cell.ScreenCol-len(label), cell.ScreenRow, label, styleLabel)
		}
	}
}

func statsTop(rows int) int {
	return max(1, (mb.WindowHeight*2+10)/2-(rows+3)/2)
}

// drawStats draws how many ships of each size are still afloat. Rows of
// sizes without survivors are struck through.
func (a *App) drawStats(player *mb.Player, alive []int, width int, own bool) {
	cellWidth := a.symbols.CellWidth()
	tableWidth := len(statsHeader)
	fieldLeft := width/2 - mb.WindowWidth*cellWidth/2

	title := titleEnemyShips
	x := fieldLeft + (cellWidth+1)*mb.WindowWidth + statsGap
	if own {
		title = titleYourShips
		x = fieldLeft - len(strconv.Itoa(a.game.MapWidth)) - tableWidth - statsGap
	}

	total := make([]int, len(alive))
	for _, ship := range player.Fleet {
		if ship.Size >= 1 && ship.Size <= len(total) {
			total[ship.Size-1]++
		}
	}

	y := statsTop(len(alive))
	putStr(a.screen, x+tableWidth/2-len(title)/2, y, title, styleDefault)
	putStr(a.screen, x, y+1, strings.Repeat("-", tableWidth), styleDefault)
	putStr(a.screen, x, y+2, statsHeader, styleDefault)

	for i, count := range alive {
		row := "|" + strings.Repeat("/", tableWidth-2) + "|"
		if count > 0 {
			row = fmt.Sprintf("| %-4d | %-5d | %-4d |", i+1, count, total[i]-count)
		}
		putStr(a.screen, x, y+3+i, row, styleDefault)
	}
	putStr(a.screen, x, y+3+len(alive), strings.Repeat("-", tableWidth), styleDefault)
}
