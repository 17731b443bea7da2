package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/salonboard/internal/booking"
	"github.com/javiermolinar/salonboard/internal/dateutil"
	"github.com/javiermolinar/salonboard/internal/schedule"
	"github.com/javiermolinar/salonboard/internal/tui/view"
)

const (
	appName  = "salonboard"
	cardMark = "▌"
)

// View renders the TUI.
func (m Model) View() string {
	return view.Render(m.viewState())
}

func (m Model) viewState() view.ViewState {
	showModal := m.mode == ModeModal && m.state != nil
	modal := ""
	if showModal {
		modal = m.renderModal()
	}
	return view.ViewState{
		Width:            m.width,
		Height:           m.height,
		BaseContent:      m.renderAppContent(),
		ModalContent:     modal,
		ShowModal:        showModal,
		Overlay:          m.overlay,
		EmptyPlaceholder: "Loading...",
	}
}

func (m Model) renderAppContent() string {
	if m.width <= 0 || m.height <= titleHeight+m.lay.HeaderH+m.lay.FooterH {
		return "Terminal too small"
	}

	title := m.renderTitle()
	var body string
	switch {
	case m.state == nil:
		msg := "Loading..."
		if !m.loading && m.statusMsg != "" {
			msg = m.statusMsg
		}
		body = m.placeBox(m.width, m.lay.HeaderH+m.lay.BodyH, lipgloss.Center, msg)
	case len(m.state.Resources()) == 0:
		msg := "No resources configured"
		if m.loadErr != nil {
			msg = fmt.Sprintf("Could not load this day: %v\nPress r to retry", m.loadErr)
		}
		body = m.placeBox(m.width, m.lay.HeaderH+m.lay.BodyH, lipgloss.Center, msg)
	default:
		body = view.RenderBoard(m.boardViewState())
		body = view.PadLinesWithBackground(body, m.width, m.lay.HeaderH+m.lay.BodyH, m.styles.colorBg)
	}
	footer := view.RenderFooter(m.footerViewState())

	content := lipgloss.JoinVertical(lipgloss.Left, title, body, footer)
	app := m.styles.AppStyle.Render(content)
	return view.PadLinesWithBackground(app, m.width, m.height, m.styles.colorBg)
}

func (m Model) placeBox(w, h int, vAlign lipgloss.Position, content string) string {
	return view.PlaceBox(w, h, vAlign, content, m.styles.colorBg)
}

func (m Model) renderTitle() string {
	s := m.styles.TitleStyle.Render(" "+appName+" ") +
		m.styles.DateStyle.Render(" "+m.date.Format("Mon 02 Jan 2006"))
	if dateutil.SameDay(m.date, m.now()) {
		s += m.styles.StatsAccentStyle.Render("  today")
	}
	if m.loading {
		s += m.styles.HelpStyle.Render("  loading...")
	}
	return view.PadLinesWithBackground(s, m.width, titleHeight, m.styles.colorBg)
}

// boardViewState lays out the visible rows of every column. Cards are
// painted in load order, so a later booking covers an earlier one in the
// same rows.
func (m Model) boardViewState() view.BoardViewState {
	g := m.state.Grid()
	resources := m.state.Resources()
	first := m.scroll
	rows := max(0, min(m.lay.BodyH, g.Height()-first))

	state := view.BoardViewState{
		GutterW:        gutterWidth,
		ColW:           m.lay.ColW,
		HeaderH:        m.lay.HeaderH,
		Headers:        make([]string, len(resources)),
		HeaderStyles:   make([]lipgloss.Style, len(resources)),
		Gutter:         make([]string, rows),
		GutterStyle:    m.styles.TimeColumnStyle,
		Columns:        make([][]view.Cell, len(resources)),
		SeparatorStyle: m.styles.SeparatorStyle,
		Width:          m.width,
		Bg:             m.styles.colorBg,
	}

	nowRow := -1
	if now := m.now(); dateutil.SameDay(m.date, now) {
		if c := booking.Clock(dateutil.MinutesOfDay(now)); g.Contains(c) {
			nowRow = g.ToPixelOffset(c) + (int(c)-int(g.Snap(c)))*g.SlotHeight()/g.Granularity()
		}
	}
	for r := range rows {
		row := first + r
		switch {
		case row == nowRow:
			state.Gutter[r] = m.styles.NowMarkerStyle.Render("▸" + booking.Clock(dateutil.MinutesOfDay(m.now())).String())
		case row%g.SlotHeight() == 0:
			state.Gutter[r] = g.SlotStart(row / g.SlotHeight()).String()
		}
	}
	for c, res := range resources {
		color := m.state.Color(c)
		state.Headers[c] = res.DisplayName
		state.HeaderStyles[c] = m.styles.headerStyle(color)
		state.Columns[c] = m.renderColumn(c, color, first, rows)
	}
	return state
}

func (m Model) renderColumn(c int, color string, first, rows int) []view.Cell {
	g := m.state.Grid()
	cells := make([]view.Cell, rows)
	for r := range cells {
		style := m.styles.EmptyCellStyle
		if ((first+r)/g.SlotHeight())%2 == 1 {
			style = m.styles.EmptyStripeStyle
		}
		cells[r] = view.Cell{Style: style}
	}

	grabbed := m.drag.Grabbed()
	card := m.styles.card(color)
	for i, b := range m.state.BookingsForResource(c) {
		rect := schedule.Place(g, b)
		lines := cardLines(b)
		style := card.Body
		if i%2 == 1 {
			style = card.Alt
		}
		for row := rect.Top; row < rect.Bottom(); row++ {
			r := row - first
			if r < 0 || r >= rows {
				continue
			}
			text := ""
			if k := row - rect.Top; k < len(lines) {
				text = lines[k]
			}
			if b == grabbed {
				cells[r] = view.Cell{Text: text, Style: m.styles.DragOriginStyle}
				continue
			}
			cells[r] = view.Cell{Text: text, Style: style, Mark: cardMark, MarkStyle: card.Stripe}
		}
	}

	m.paintGhost(cells, c, first)

	if m.mode != ModeModal && c == m.cursor.Column {
		sh := g.SlotHeight()
		for row := m.cursor.Slot * sh; row < (m.cursor.Slot+1)*sh; row++ {
			if r := row - first; r >= 0 && r < rows {
				cells[r].Style = m.styles.CursorStyle
				if cells[r].Text == "" && cells[r].Mark == "" && row == m.cursor.Slot*sh {
					cells[r].Text = g.SlotStart(m.cursor.Slot).String()
				}
			}
		}
	}
	return cells
}

// paintGhost draws where the held card would land: the pointer preview
// during a mouse drag, the cursor during a keyboard move.
func (m Model) paintGhost(cells []view.Cell, c, first int) {
	b := m.drag.Grabbed()
	if b == nil {
		return
	}
	g := m.state.Grid()

	var at schedule.Placement
	style := m.styles.DragPreviewStyle
	switch {
	case m.mode == ModeMove:
		at = schedule.Placement{ResourceIndex: m.cursor.Column, Start: g.SlotStart(m.cursor.Slot)}
		style = m.styles.KeyboardMoveStyle
	case m.hasPreview:
		at = m.preview
	default:
		return
	}
	if at.ResourceIndex != c {
		return
	}

	ghost := *b
	ghost.Start = at.Start
	rect := schedule.Place(g, &ghost)
	lines := cardLines(&ghost)
	for row := rect.Top; row < rect.Bottom(); row++ {
		r := row - first
		if r < 0 || r >= len(cells) {
			continue
		}
		text := ""
		if k := row - rect.Top; k < len(lines) {
			text = lines[k]
		}
		cells[r] = view.Cell{Text: text, Style: style}
	}
}

func cardLines(b *booking.Booking) []string {
	return []string{b.CustomerDisplayName, b.ServiceName, formatRange(b)}
}

func formatRange(b *booking.Booking) string {
	return view.FormatRange(b.Start, b.DurationMinutes)
}

func (m Model) footerViewState() view.FooterModel {
	statusStyle := m.styles.StatusStyle
	if m.statusErr {
		statusStyle = m.styles.ErrorStyle
	}
	return view.FooterModel{
		InnerW:      m.width,
		StatsLine:   m.statsLine(),
		StatusText:  m.statusMsg,
		HelpText:    m.helpText(),
		StatusStyle: statusStyle,
		HelpStyle:   m.styles.HelpStyle,
		Bg:          m.styles.colorBg,
	}
}

func (m Model) statsLine() string {
	if m.state == nil {
		return ""
	}
	st := m.state.Stats()
	sep := m.styles.StatsBarStyle.Render(" · ")
	parts := []string{
		m.styles.StatsAccentStyle.Render(fmt.Sprintf(" %d", st.Bookings)) +
			m.styles.StatsBarStyle.Render(" bookings"),
		m.styles.StatsBarStyle.Render(view.FormatDuration(st.BookedMinutes) + " booked"),
	}
	for i, res := range m.state.Resources() {
		parts = append(parts, m.styles.headerStyle(m.state.Color(i)).Render(res.DisplayName)+
			m.styles.StatsBarStyle.Render(" "+view.FormatDuration(st.PerResource[i])))
	}
	return strings.Join(parts, sep)
}

func (m Model) helpText() string {
	switch m.mode {
	case ModeMove:
		return " hjkl: choose slot · enter: drop · esc: cancel"
	case ModeModal:
		return " tab: next field · enter: book · esc: cancel"
	default:
		return " hjkl: move · n: new · m: move booking · drag: reschedule · [ ]: day · t: today · r: reload · c: copy · q: quit"
	}
}

func (m Model) renderModal() string {
	s := m.styles
	modalStyles := view.ModalStyles{
		ModalHeaderStyle:       s.ModalHeaderStyle,
		ModalTitleStyle:        s.ModalTitleStyle,
		ModalFooterStyle:       s.ModalFooterStyle,
		ModalStyle:             s.ModalStyle,
		ModalButtonStyle:       s.ModalButtonStyle,
		ModalButtonActiveStyle: s.ModalButtonActiveStyle,
		ModalBodyStyle:         s.ModalBodyStyle,
	}

	services := m.state.Services()
	serviceLabels := make([]string, len(services))
	for i, svc := range services {
		serviceLabels[i] = fmt.Sprintf("%s %s", svc.Name, view.FormatPrice(svc.Price))
	}

	durationLabels := make([]string, len(durationOptions))
	for i, d := range durationOptions {
		if d == 0 {
			durationLabels[i] = "default"
			continue
		}
		durationLabels[i] = view.FormatDuration(d)
	}

	req := m.formRequest()
	minutes := req.DurationMinutes
	if svc, ok := m.state.Service(req.ServiceIndex); ok && minutes == 0 {
		minutes = svc.DurationMinutes
	}
	resource, _ := m.state.Resource(req.ResourceIndex)

	nameStyle := s.ModalInputStyle
	if m.form.focus == 0 {
		nameStyle = s.ModalInputFocusedStyle
	}
	errText := m.form.err
	if m.form.busy {
		errText = "Saving..."
	}

	body := view.RenderBookingFormBody(view.BookingFormModel{
		DateLabel:     m.date.Format("Mon 02 Jan"),
		TimeRange:     view.FormatRange(req.Time, minutes),
		ResourceLabel: resource.DisplayName,
		NameValue:     m.form.name.View(),
		NameStyle:     nameStyle,
		Services:      serviceLabels,
		ActiveService: m.form.service,
		Durations:     durationLabels,
		ActiveDur:     m.form.duration,
		Focus:         m.form.focus,
		Error:         errText,
	}, view.BookingFormStyles{
		TagStyle:          s.ModalTagStyle,
		BodyStyle:         s.ModalBodyStyle,
		SectionTitleStyle: s.ModalSectionTitleStyle,
		OptionActive:      s.OptionActiveStyle,
		OptionInactive:    s.OptionInactiveStyle,
		HintStyle:         s.ModalHintStyle,
		ErrorStyle:        s.ModalErrorStyle,
	})

	return view.RenderModalFrame("New booking", body, view.BookingFormFooter(modalStyles), modalStyles)
}
