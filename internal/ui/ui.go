package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/arcanaland/turkokards/internal/ansiart"
	"github.com/arcanaland/turkokards/internal/deck"
	"github.com/arcanaland/turkokards/internal/logbook"
	"github.com/arcanaland/turkokards/internal/reading"
	"github.com/arcanaland/turkokards/internal/session"
	"github.com/arcanaland/turkokards/internal/settings"
)

const (
	viewReading = "reading"
	viewDecks   = "decks"
	viewCard    = "card"
	viewSizes   = "sizes"
	viewPrompt  = "prompt"
	viewHelp    = "help"
	viewAbout   = "about"
)

const (
	promptSave = "Save reading as"
	promptOpen = "Open reading"
)

// Options configures the reader
type Options struct {
	Version  string
	SavePath func(name string) string // maps typed names to files
	Logger   zerolog.Logger
}

// imagesMsg carries the result of resolving a reading's images
type imagesMsg struct {
	reading *reading.Reading
	images  *session.Images
	err     error
}

type model struct {
	ctx      context.Context
	session  *session.Session
	renderer *ansiart.Renderer
	opts     Options
	log      zerolog.Logger
	styles   styles

	view   string
	cursor int
	status string

	// image lookup for the reading on display
	images  *session.Images
	loading bool

	// deck and size pickers
	deckCursor int
	sizeCursor int

	// save/open prompt
	promptKind  string
	promptInput string

	// card detail
	detail string

	width  int
	height int
}

func initialModel(ctx context.Context, s *session.Session, opts Options, log zerolog.Logger) model {
	m := model{
		ctx:      ctx,
		session:  s,
		renderer: ansiart.NewRenderer(2 * reading.Size),
		opts:     opts,
		log:      log,
		view:     viewReading,
	}
	m.styles = newStyles(s.Settings().DarkMode)
	for i, id := range s.DeckIDs() {
		if id == s.DeckID() {
			m.deckCursor = i
		}
	}
	m.status = fmt.Sprintf("Press r to draw from %s, d to choose a deck.", s.DeckID())
	return m
}

// tea.Model implementation ---------------------------------------------------
func (m model) Init() tea.Cmd { return nil }

func (m model) View() string {
	var body string
	switch m.view {
	case viewDecks:
		body = m.renderDecks()
	case viewCard:
		body = m.detail
	case viewSizes:
		body = m.renderSizes()
	case viewPrompt:
		body = m.renderPrompt()
	case viewHelp:
		body = m.renderHelp()
	case viewAbout:
		body = m.renderAbout()
	default:
		body = m.renderReading()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(body)
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.styles.muted.Render(m.status))
		b.WriteString("\n")
	}
	return b.String()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.view == viewCard {
			m.detail = m.renderCard()
		}
		return m, nil
	case imagesMsg:
		return m.handleImages(msg), nil
	case tea.KeyMsg:
		k := msg.String()
		if k == "ctrl+c" {
			return m, m.quit()
		}
		switch m.view {
		case viewPrompt:
			return m.updatePrompt(msg)
		case viewDecks:
			return m.updateDecks(k)
		case viewSizes:
			return m.updateSizes(k)
		case viewCard, viewHelp, viewAbout:
			switch k {
			case "esc", "q", "enter", "?":
				m.view = viewReading
			}
			return m, nil
		}
		return m.updateReading(k)
	}
	return m, nil
}

func (m model) updateReading(k string) (tea.Model, tea.Cmd) {
	switch k {
	case "q", "esc":
		return m, m.quit()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < reading.Size-1 {
			m.cursor++
		}
	case "enter":
		if m.session.Current() != nil {
			m.view = viewCard
			m.detail = m.renderCard()
		}
	case "r":
		return m.generate(m.session.DeckID())
	case "d":
		m.view = viewDecks
	case "z":
		m.view = viewSizes
		for i, p := range settings.SizePresets {
			if p.Width == m.session.Settings().CardWidth {
				m.sizeCursor = i
			}
		}
	case "s":
		m.view, m.promptKind, m.promptInput = viewPrompt, promptSave, ""
	case "o":
		m.view, m.promptKind, m.promptInput = viewPrompt, promptOpen, ""
	case "c":
		m.clearLog()
	case "x":
		m.session.Dismiss()
		m.images, m.loading = nil, false
		m.status = "Cleared."
	case "t":
		dark, err := m.session.ToggleTheme()
		if err != nil {
			m.fail("toggling theme", err)
			break
		}
		m.styles = newStyles(dark)
		m.status = "Theme: " + themeName(dark)
	case "m":
		on, err := m.session.ToggleMusic()
		if err != nil {
			m.fail("playing music", err)
			break
		}
		_, track := m.session.Music()
		if on {
			m.status = "Playing " + track
		} else {
			m.status = "Music off"
		}
	case "n":
		track, err := m.session.NextTrack()
		if err != nil {
			m.fail("changing track", err)
			break
		}
		m.status = "Track: " + track
	case "?":
		m.view = viewHelp
	case "i":
		m.view = viewAbout
	}
	return m, nil
}

func (m model) updateDecks(k string) (tea.Model, tea.Cmd) {
	ids := m.session.DeckIDs()
	switch k {
	case "up", "k":
		if m.deckCursor > 0 {
			m.deckCursor--
		}
	case "down", "j":
		if m.deckCursor < len(ids)-1 {
			m.deckCursor++
		}
	case "enter":
		m.view = viewReading
		if m.deckCursor < len(ids) {
			return m.generate(ids[m.deckCursor])
		}
	case "esc", "q":
		m.view = viewReading
	}
	return m, nil
}

func (m model) updateSizes(k string) (tea.Model, tea.Cmd) {
	switch k {
	case "up", "k":
		if m.sizeCursor > 0 {
			m.sizeCursor--
		}
	case "down", "j":
		if m.sizeCursor < len(settings.SizePresets)-1 {
			m.sizeCursor++
		}
	case "enter":
		m.view = viewReading
		width := settings.SizePresets[m.sizeCursor].Width
		r, err := m.session.SetCardWidth(width)
		if err != nil {
			m.fail("loading reading", err)
			return m, nil
		}
		m.status = fmt.Sprintf("Card width: %d", width)
		if r != nil {
			return m.show(r)
		}
	case "esc", "q":
		m.view = viewReading
	}
	return m, nil
}

func (m model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.view = viewReading
		m.status = ""
		return m, nil
	case tea.KeyBackspace:
		if r := []rune(m.promptInput); len(r) > 0 {
			m.promptInput = string(r[:len(r)-1])
		}
		return m, nil
	case tea.KeySpace:
		m.promptInput += " "
		return m, nil
	case tea.KeyRunes:
		m.promptInput += string(msg.Runes)
		return m, nil
	case tea.KeyEnter:
	default:
		return m, nil
	}

	name := strings.TrimSpace(m.promptInput)
	m.view = viewReading
	if name == "" {
		return m, nil
	}
	path := name
	if m.opts.SavePath != nil {
		path = m.opts.SavePath(name)
	}

	if m.promptKind == promptSave {
		saved, err := m.session.SaveCurrentReading(path)
		if err != nil {
			m.fail("saving reading", err)
			return m, nil
		}
		m.status = "Saved to " + saved
		return m, nil
	}

	r, err := m.session.OpenSavedReading(path)
	if err != nil {
		m.fail("opening reading", err)
		return m, nil
	}
	for i, id := range m.session.DeckIDs() {
		if id == r.DeckID {
			m.deckCursor = i
		}
	}
	m.status = "Opened " + path
	return m.show(r)
}

func (m model) generate(deckID string) (tea.Model, tea.Cmd) {
	r, err := m.session.GenerateReading(deckID)
	if err != nil {
		m.fail("drawing reading", err)
		return m, nil
	}
	m.status = "Reading from " + deckID
	return m.show(r)
}

// show puts a reading on screen and starts resolving its images in the background
func (m model) show(r *reading.Reading) (tea.Model, tea.Cmd) {
	m.cursor = 0
	m.images = nil
	m.loading = true
	ctx, s := m.ctx, m.session
	return m, func() tea.Msg {
		images, err := s.ResolveImages(ctx, r)
		return imagesMsg{reading: r, images: images, err: err}
	}
}

func (m model) handleImages(msg imagesMsg) model {
	current := m.session.Current()
	if errors.Is(msg.err, session.ErrSuperseded) || current == nil || current.ID != msg.reading.ID {
		return m
	}
	m.loading = false
	if msg.err != nil {
		m.fail("loading images", msg.err)
		return m
	}
	m.images = msg.images
	if missing := msg.images.Missing(); len(missing) > 0 {
		m.status = "Image not found: " + strings.Join(missing, ", ")
	}
	return m
}

func (m *model) clearLog() {
	existed, err := m.session.ClearLog()
	switch {
	case err != nil:
		m.fail("clearing log", err)
	case existed:
		m.status = "Log file cleared successfully."
	default:
		m.status = "Log file is already clear."
	}
}

// fail reports an action's error in the status line; the reader stays usable
func (m *model) fail(action string, err error) {
	m.log.Error().Err(err).Str("action", action).Msg("action failed")

	var unknown *deck.UnknownDeckError
	var short *logbook.ShortLogError
	var parse *reading.ParseError
	switch {
	case errors.As(err, &unknown), errors.As(err, &parse):
		m.status = "Error: " + err.Error()
	case errors.As(err, &short):
		m.status = "Error: no complete reading in the log"
	default:
		m.status = fmt.Sprintf("An error occurred while %s: %v", action, err)
	}
}

func (m model) quit() tea.Cmd {
	if err := m.session.Close(); err != nil {
		m.log.Warn().Err(err).Msg("closing session")
	}
	return tea.Quit
}

// Rendering ------------------------------------------------------------------

func (m model) renderHeader() string {
	prefs := m.session.Settings()
	music := "off"
	if on, track := m.session.Music(); on {
		music = track
	}
	info := fmt.Sprintf("deck %s · width %d · %s · music %s",
		m.session.DeckID(), prefs.CardWidth, themeName(prefs.DarkMode), music)
	return m.styles.title.Render("TurkoKards") + "  " + m.styles.header.Render(info)
}

func (m model) renderReading() string {
	r := m.session.Current()
	if r == nil {
		return m.styles.muted.Render("No reading on display.")
	}

	width := 0
	for _, p := range reading.Positions {
		if len(p) > width {
			width = len(p)
		}
	}

	var b strings.Builder
	for i, e := range r.Entries {
		marker := "  "
		if i == m.cursor {
			marker = m.styles.cursor.Render("› ")
		}
		label := m.styles.card.Render(e.Card.Name)
		if e.Card.Reversed {
			label = m.styles.reversed.Render(e.Card.Label())
		}
		b.WriteString(marker)
		b.WriteString(m.styles.position.Render(fmt.Sprintf("%-*s", width, e.Position)))
		b.WriteString("  ")
		b.WriteString(m.imageMark(i))
		b.WriteString(" ")
		b.WriteString(label)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.muted.Render("enter card · r redraw · d deck · s save · o open · z size · t theme · ? help"))
	return m.styles.panel.Render(b.String())
}

func (m model) imageMark(i int) string {
	switch {
	case m.loading:
		return m.styles.muted.Render("…")
	case m.images == nil:
		return " "
	case m.images.Paths[i] == "":
		return m.styles.warning.Render("✗")
	default:
		return m.styles.found.Render("✓")
	}
}

// renderCard shows the selected card's art next to its definition
func (m model) renderCard() string {
	r := m.session.Current()
	if r == nil {
		return ""
	}
	e := r.Entries[m.cursor]

	termWidth := m.width
	if termWidth <= 0 {
		termWidth = 100
	}

	art := m.styles.muted.Render("(image loading)")
	artWidth := 0
	if m.images != nil {
		if path := m.images.Paths[m.cursor]; path != "" {
			columns := ansiart.Columns(m.session.Settings().CardWidth)
			if columns > termWidth/2 {
				columns = termWidth / 2
			}
			rendered, err := m.renderer.RenderFile(path, columns)
			if err != nil {
				art = m.styles.warning.Render(err.Error())
			} else {
				art, artWidth = rendered, columns
			}
		} else {
			art = m.styles.warning.Render("Image not found: " + e.Card.Label())
		}
	}

	text, err := m.session.Definition(e)
	if errors.Is(err, deck.ErrDefinitionNotFound) {
		text = "Definition not found."
	} else if err != nil {
		text = err.Error()
	}

	textWidth := termWidth - artWidth - 6
	if textWidth < 20 {
		textWidth = 20
	}
	definition := text
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(glamourStyle(m.session.Settings().DarkMode)),
		glamour.WithWordWrap(textWidth),
	)
	if err == nil {
		if out, err := renderer.Render(text); err == nil {
			definition = out
		}
	}

	title := m.styles.position.Render(e.Position) + "\n"
	if e.Card.Reversed {
		title += m.styles.reversed.Render(e.Card.Label())
	} else {
		title += m.styles.card.Render(e.Card.Label())
	}
	info := lipgloss.NewStyle().Width(textWidth).Render(title + "\n" + definition)
	return lipgloss.JoinHorizontal(lipgloss.Top, art, "  ", info)
}

func (m model) renderDecks() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render("Deck") + "\n\n")
	grouped := false
	for i, id := range m.session.DeckIDs() {
		name := id
		if strings.HasPrefix(id, "playing_") {
			if !grouped {
				b.WriteString(m.styles.muted.Render("Playing Cards") + "\n")
				grouped = true
			}
			name = "  " + playingTitle(id)
		}
		marker := "  "
		if i == m.deckCursor {
			marker = m.styles.cursor.Render("› ")
		}
		b.WriteString(marker + name + "\n")
	}
	b.WriteString("\n" + m.styles.muted.Render("enter draw · esc back"))
	return m.styles.panel.Render(b.String())
}

func (m model) renderSizes() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render("Size") + "\n\n")
	current := m.session.Settings().CardWidth
	for i, p := range settings.SizePresets {
		marker := "  "
		if i == m.sizeCursor {
			marker = m.styles.cursor.Render("› ")
		}
		line := fmt.Sprintf("%-6s %4d", p.Label, p.Width)
		if p.Width == current {
			line += m.styles.muted.Render("  (current)")
		}
		b.WriteString(marker + line + "\n")
	}
	b.WriteString("\n" + m.styles.muted.Render("enter apply · esc back"))
	return m.styles.panel.Render(b.String())
}

func (m model) renderPrompt() string {
	return m.styles.panel.Render(
		m.styles.title.Render(m.promptKind) + "\n\n" +
			m.promptInput + m.styles.cursor.Render("▏") + "\n\n" +
			m.styles.muted.Render("a bare name is kept in the saves folder · enter confirm · esc cancel"))
}

func (m model) renderHelp() string {
	keys := [][2]string{
		{"r", "draw a new reading from the current deck"},
		{"d", "choose a deck and draw"},
		{"↑/↓ enter", "open a card with its definition"},
		{"s / o", "save / open a reading"},
		{"c", "clear the reading log"},
		{"x", "clear the display"},
		{"z", "card size"},
		{"t", "toggle dark mode"},
		{"m / n", "toggle music / next track"},
		{"i", "about"},
		{"q", "quit"},
	}
	var b strings.Builder
	b.WriteString(m.styles.title.Render("Help") + "\n\n")
	for _, k := range keys {
		b.WriteString(m.styles.position.Render(fmt.Sprintf("%-10s", k[0])) + " " + k[1] + "\n")
	}
	return m.styles.panel.Render(b.String())
}

func (m model) renderAbout() string {
	return m.styles.panel.Render(
		m.styles.title.Render("TurkoKards") + "\n" +
			"Version " + m.opts.Version + "\n\n" +
			"Thirteen card tarot readings in your terminal.\n" +
			"Decks and card art: https://turkokards.com")
}

func themeName(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}

// playingTitle turns playing_dark_extended into "Playing Dark Extended"
func playingTitle(id string) string {
	words := strings.Split(id, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
