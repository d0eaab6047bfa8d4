package normalize

import (
	"fmt"
	"strings"

	"github.com/preston-bernstein/scoreboard-service/internal/coerce"
	"github.com/preston-bernstein/scoreboard-service/internal/domain/games"
)

// Regulation period counts.
const (
	HockeyRegulation     = 3
	FootballRegulation   = 4
	BasketballRegulation = 4
	BaseballRegulation   = 9
)

// Period describes the current or final period of a game. Type is REG, OT or SO when the
// provider says so; otherwise overtime is inferred from Number exceeding regulation.
type Period struct {
	Number int
	Type   string
}

// Ordinal renders 1st, 2nd, 3rd, 4th...
func Ordinal(n int) string {
	if n <= 0 {
		return ""
	}
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

// PeriodLabel renders a period: an ordinal in regulation, OT or <n>OT in overtime counted
// from the end of regulation, SO for a shootout.
func PeriodLabel(p Period, regulation int) string {
	kind := strings.ToUpper(strings.TrimSpace(p.Type))
	switch {
	case kind == "SO":
		return "SO"
	case kind == "OT" || (regulation > 0 && p.Number > regulation):
		n := p.Number - regulation
		if n <= 1 {
			return "OT"
		}
		return fmt.Sprintf("%dOT", n)
	default:
		return Ordinal(p.Number)
	}
}

// FinalDetail renders Final, Final/OT, Final/<n>OT or Final/SO.
func FinalDetail(p Period, regulation int) string {
	label := PeriodLabel(p, regulation)
	if label == "SO" || strings.HasSuffix(label, "OT") {
		return "Final/" + label
	}
	return "Final"
}

func liveStatus(label, clock string, ended bool) games.Status {
	clock = strings.TrimSpace(clock)
	if ended {
		return games.Status{State: games.StateLive, Period: label, Detail: strings.TrimSpace(label + " End")}
	}
	return games.Status{State: games.StateLive, Period: label, Clock: clock, Detail: strings.TrimSpace(label + " " + clock)}
}

func finalStatus(p Period, regulation int) games.Status {
	return games.Status{State: games.StateFinal, Period: PeriodLabel(p, regulation), Detail: FinalDetail(p, regulation)}
}

// echoStatus keeps an unrecognized provider state visible without inventing a lifecycle.
func echoStatus(raw string) games.Status {
	return games.Status{State: games.StatePre, Detail: strings.TrimSpace(raw)}
}

// NHLStatus maps an NHL gameState (FUT, PRE, LIVE, CRIT, FINAL, OFF) onto the canonical status.
func NHLStatus(gameState string, p Period, clock string, intermission bool) games.Status {
	switch strings.ToUpper(strings.TrimSpace(gameState)) {
	case "FUT", "PRE":
		return games.Status{State: games.StatePre}
	case "LIVE", "CRIT":
		label := PeriodLabel(p, HockeyRegulation)
		if label == "SO" {
			return games.Status{State: games.StateLive, Period: label, Detail: label}
		}
		return liveStatus(label, clock, intermission)
	case "FINAL", "OFF":
		return finalStatus(p, HockeyRegulation)
	default:
		return echoStatus(gameState)
	}
}

// ESPNStatus maps an ESPN status block (type.state pre/in/post) onto the canonical status.
func ESPNStatus(status any, regulation int) games.Status {
	state := strings.ToLower(coerce.FirstText(status, "type.state"))
	name := strings.ToUpper(coerce.FirstText(status, "type.name"))
	detail := coerce.FirstText(status, "type.shortDetail", "type.detail", "type.description")
	number, _ := coerce.Int(coerce.Path(status, "period"))

	p := Period{Number: number}
	if espnShootout(status, name, regulation) {
		p.Type = "SO"
	}

	switch state {
	case "pre":
		return games.Status{State: games.StatePre, Detail: detail}
	case "in":
		label := PeriodLabel(p, regulation)
		switch {
		case strings.Contains(name, "HALFTIME"):
			return games.Status{State: games.StateLive, Period: label, Detail: "Halftime"}
		case strings.Contains(name, "END_PERIOD"):
			return liveStatus(label, "", true)
		}
		return liveStatus(label, coerce.FirstText(status, "displayClock"), false)
	case "post":
		if interrupted(name) {
			return games.Status{State: games.StateFinal, Detail: detail}
		}
		return finalStatus(p, regulation)
	default:
		if detail == "" {
			detail = state
		}
		return echoStatus(detail)
	}
}

// ESPN hockey finals decided in a shootout often keep type.name STATUS_FINAL and only
// carry the marker in the detail text ("Final/SO").
func espnShootout(status any, name string, regulation int) bool {
	if strings.Contains(name, "SHOOTOUT") {
		return true
	}
	if regulation != HockeyRegulation {
		return false
	}
	if strings.HasSuffix(name, "_SO") {
		return true
	}
	for _, path := range []string{"type.shortDetail", "type.detail"} {
		if strings.HasSuffix(strings.ToUpper(strings.TrimSpace(coerce.FirstText(status, path))), "/SO") {
			return true
		}
	}
	return false
}

func interrupted(name string) bool {
	for _, marker := range []string{"POSTPONED", "CANCELED", "CANCELLED", "SUSPENDED", "FORFEIT"} {
		if strings.Contains(name, marker) {
			return true
		}
	}
	return false
}

// MLBStatus maps StatsAPI abstractGameState (Preview, Live, Final) plus the linescore inning.
// Extra-inning finals render as Final/<innings>.
func MLBStatus(game any) games.Status {
	abstract := coerce.FirstText(game, "status.abstractGameState")
	detailed := coerce.FirstText(game, "status.detailedState")
	inning, _ := coerce.Int(coerce.Path(game, "linescore.currentInning"))
	ordinal := coerce.FirstText(game, "linescore.currentInningOrdinal")
	if ordinal == "" {
		ordinal = Ordinal(inning)
	}

	switch strings.ToLower(abstract) {
	case "preview":
		return games.Status{State: games.StatePre, Detail: detailed}
	case "live":
		half := coerce.FirstText(game, "linescore.inningState", "linescore.inningHalf")
		detail := strings.TrimSpace(half + " " + ordinal)
		if detail == "" {
			detail = detailed
		}
		return games.Status{State: games.StateLive, Period: ordinal, Detail: detail}
	case "final":
		switch detailed {
		case "", "Final", "Game Over":
		default:
			return games.Status{State: games.StateFinal, Detail: detailed}
		}
		if inning > BaseballRegulation {
			return games.Status{State: games.StateFinal, Period: ordinal, Detail: fmt.Sprintf("Final/%d", inning)}
		}
		return games.Status{State: games.StateFinal, Period: ordinal, Detail: "Final"}
	default:
		if detailed == "" {
			detailed = abstract
		}
		return echoStatus(detailed)
	}
}

// StatsAPIStatus maps the legacy NHL StatsAPI status and linescore.
func StatsAPIStatus(game any) games.Status {
	abstract := coerce.FirstText(game, "status.abstractGameState")
	number, _ := coerce.Int(coerce.Path(game, "linescore.currentPeriod"))
	p := Period{Number: number}
	if strings.EqualFold(coerce.FirstText(game, "linescore.currentPeriodOrdinal"), "SO") {
		p.Type = "SO"
	}

	switch strings.ToLower(abstract) {
	case "preview":
		return games.Status{State: games.StatePre, Detail: coerce.FirstText(game, "status.detailedState")}
	case "live":
		clock := coerce.FirstText(game, "linescore.currentPeriodTimeRemaining")
		ended := strings.EqualFold(clock, "END") || flag(coerce.Path(game, "linescore.intermissionInfo.inIntermission"))
		if ended {
			clock = ""
		}
		return liveStatus(PeriodLabel(p, HockeyRegulation), clock, ended)
	case "final":
		return finalStatus(p, HockeyRegulation)
	default:
		return echoStatus(coerce.FirstText(game, "status.detailedState", "status.abstractGameState"))
	}
}

// StatsRESTStatus maps the NHL stats REST gameStateId. Regular-season games (gameType 2)
// that reach a fifth period went to a shootout.
func StatsRESTStatus(stateID, period, gameType int) games.Status {
	p := Period{Number: period}
	if gameType == 2 && period == HockeyRegulation+2 {
		p.Type = "SO"
	}
	switch stateID {
	case 1, 2:
		return games.Status{State: games.StatePre}
	case 3, 4:
		return liveStatus(PeriodLabel(p, HockeyRegulation), "", false)
	case 5, 6, 7:
		return finalStatus(p, HockeyRegulation)
	default:
		return echoStatus(fmt.Sprintf("gameStateId %d", stateID))
	}
}

// SportsDBStatus maps TheSportsDB strStatus values.
func SportsDBStatus(raw string) games.Status {
	code := strings.ToUpper(strings.TrimSpace(raw))
	switch code {
	case "", "NS", "NOT STARTED", "TBD", "SCHEDULED":
		return games.Status{State: games.StatePre}
	case "FT", "MATCH FINISHED", "FINISHED", "FINAL":
		return finalStatus(Period{Number: HockeyRegulation}, HockeyRegulation)
	case "AOT", "AET":
		return finalStatus(Period{Number: HockeyRegulation + 1, Type: "OT"}, HockeyRegulation)
	case "AP", "PEN":
		return finalStatus(Period{Type: "SO"}, HockeyRegulation)
	case "1P", "P1":
		return liveStatus(Ordinal(1), "", false)
	case "2P", "P2":
		return liveStatus(Ordinal(2), "", false)
	case "3P", "P3":
		return liveStatus(Ordinal(3), "", false)
	case "OT":
		return liveStatus("OT", "", false)
	case "BT", "PT", "SO":
		return games.Status{State: games.StateLive, Period: "SO", Detail: "SO"}
	case "LIVE", "IN PROGRESS":
		return games.Status{State: games.StateLive, Detail: strings.TrimSpace(raw)}
	default:
		return echoStatus(raw)
	}
}

// ResultsStatus maps results-page unit status codes.
func ResultsStatus(raw string) games.Status {
	switch strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(raw), " ", "_")) {
	case "", "SCHEDULED", "UPCOMING", "GETTING_READY":
		return games.Status{State: games.StatePre}
	case "RUNNING", "LIVE", "IN_PROGRESS", "INTERRUPTED":
		return games.Status{State: games.StateLive, Detail: strings.TrimSpace(raw)}
	case "FINISHED", "FINAL", "OFFICIAL", "UNOFFICIAL":
		return games.Status{State: games.StateFinal, Detail: "Final"}
	default:
		return echoStatus(raw)
	}
}
