package rest

import (
	"embed"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/view"
)

//go:embed templates/index.html
var templates embed.FS

var pageTemplate = template.Must(template.ParseFS(templates, "templates/index.html"))

const pageName = "index.html"

type pagePlayer struct {
	Symbol entity.Symbol
	Name   string
	Active bool
}

type pageCell struct {
	Index    int
	Symbol   entity.Symbol
	Label    string
	Disabled bool
	Winning  bool
}

type pageData struct {
	Players []pagePlayer
	Cells   []pageCell
	Moves   []string
	Banner  string
	Error   string
}

func newPageData(game *entity.Game, errMsg string) pageData {
	data := pageData{
		Banner: view.Banner(game),
		Error:  errMsg,
		Cells:  make([]pageCell, 0, entity.CellCount),
	}

	for _, player := range game.Players {
		data.Players = append(data.Players, pagePlayer{
			Symbol: player.Symbol,
			Name:   player.Name,
			Active: player.Symbol == game.Turn,
		})
	}

	for index := 0; index < entity.CellCount; index++ {
		pos := entity.PositionFromIndex(index)
		data.Cells = append(data.Cells, pageCell{
			Index:    index,
			Symbol:   game.Board.At(pos),
			Label:    view.CellLabel(game, pos),
			Disabled: !game.CanSelect(pos),
			Winning:  game.OnWinningLine(pos),
		})
	}

	for i, move := range game.Moves.Chronological() {
		data.Moves = append(data.Moves, view.MoveLabel(i+1, move))
	}

	return data
}

func (that *Server) handlePage(c *gin.Context) {
	game, err := that.game.GetGame(c.Request.Context())
	if err != nil {
		that.logger.Error("failed to render page", "error", err)
		c.String(statusFor(err), "game is not available")
		return
	}

	c.HTML(http.StatusOK, pageName, newPageData(game, c.Query("error")))
}

func (that *Server) handleSelectCell(c *gin.Context) {
	index, err := strconv.Atoi(c.PostForm("cell"))
	if err != nil || index < 0 || index >= entity.CellCount {
		redirectToPage(c, apperror.ErrInvalidCell)
		return
	}

	_, err = that.game.SelectSquare(c.Request.Context(), entity.PositionFromIndex(index))
	redirectToPage(c, err)
}

func (that *Server) handleRenameForm(c *gin.Context) {
	_, err := that.game.RenameSymbol(c.Request.Context(), symbolParam(c), c.PostForm("name"))
	redirectToPage(c, err)
}

func (that *Server) handleRestartForm(c *gin.Context) {
	_, err := that.game.Restart(c.Request.Context())
	redirectToPage(c, err)
}

// redirectToPage - post/redirect/get back to the board, carrying the error if any.
func redirectToPage(c *gin.Context, err error) {
	location := "/"
	if err != nil {
		location += "?error=" + url.QueryEscape(err.Error())
	}

	c.Redirect(http.StatusSeeOther, location)
}
