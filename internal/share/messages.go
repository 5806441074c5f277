// Package share builds the cast text users post after voting. Every message
// is drawn from fixed template tables with a seeded RNG so a given seed
// always yields the same wording.
package share

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/zabal-art/zabal-hub/internal/domain"
)

var modeTemplates = map[string][]string{
	domain.ModeStudio: {
		"🎬 Voted STUDIO for this week's stream! Time for deep work and long-form creation.",
		"🎨 I'm backing STUDIO mode this week - let's see some serious building!",
		"🎬 STUDIO MODE gets my vote! Ready for focused creation time.",
		"🔨 Voted for STUDIO - can't wait to see what gets built this week!",
		"🎬 My vote: STUDIO MODE. Let's dive deep into creation.",
	},
	domain.ModeMarket: {
		"🛒 MARKET MODE has my vote! Fast decisions and community-driven action.",
		"📊 Backing MARKET this week - let's see some rapid-fire moves!",
		"🛒 Voted MARKET! Time for quick decisions and community energy.",
		"💼 My vote goes to MARKET MODE - let's make things happen fast!",
		"🛒 MARKET MODE for the win! Community-driven chaos incoming.",
	},
	domain.ModeSocial: {
		"🌐 SOCIAL MODE gets my vote! Engagement-first, interactive vibes.",
		"💬 I voted SOCIAL - let's prioritize community interaction this week!",
		"🌐 Backing SOCIAL MODE! Time for maximum engagement.",
		"🤝 My vote: SOCIAL! Let's make this week all about the community.",
		"🌐 SOCIAL MODE has my support - interaction over everything!",
	},
	domain.ModeBattle: {
		"⚔️ BATTLE MODE! I voted for high stakes and competitive energy.",
		"🔥 My vote goes to BATTLE - let's see some intense competition!",
		"⚔️ Voted BATTLE MODE! Ready for high-stakes action.",
		"💪 BATTLE MODE gets my vote - bring on the competitive energy!",
		"⚔️ I'm backing BATTLE this week. Let the competition begin!",
	},
}

var modeEmojis = map[string][]string{
	domain.ModeStudio: {"🎬", "🎨", "🔨", "🎯", "🎪"},
	domain.ModeMarket: {"🛒", "📊", "💼", "🏪", "💰"},
	domain.ModeSocial: {"🌐", "💬", "🤝", "👥", "🗣️"},
	domain.ModeBattle: {"⚔️", "🔥", "💪", "🎮", "🏆"},
}

var callsToAction = []string{
	"What's your pick?",
	"Where should we focus?",
	"What mode are you voting for?",
	"Cast your vote!",
	"What's your signal?",
	"Which direction should we go?",
	"Add your voice!",
	"What do you think?",
	"Join the vote!",
	"Make your choice count!",
}

var platformEmojis = map[string][]string{
	"Farcaster": {"🟣", "💜", "🎯"},
	"Twitter":   {"🐦", "🔵", "✨"},
	"YouTube":   {"📺", "🎥", "▶️"},
	"Instagram": {"📸", "💫", "🌟"},
}

// Generator produces share messages from a fixed seed.
type Generator struct {
	rng *rand.Rand
}

func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

func (g *Generator) pick(items []string) string {
	return items[g.rng.Intn(len(items))]
}

// VoteOptions carries the personal context embellishing a vote message.
type VoteOptions struct {
	Streak      int
	VotePower   int
	IsFirstVote bool
}

// VoteMessage builds the post-vote share text for a mode. Unknown modes fall
// back to the studio templates.
func (g *Generator) VoteMessage(mode string, opts VoteOptions) string {
	templates, ok := modeTemplates[mode]
	if !ok {
		templates = modeTemplates[domain.ModeStudio]
	}

	var b strings.Builder
	b.WriteString(g.pick(templates))

	if opts.Streak >= 3 {
		b.WriteString(g.pick([]string{
			fmt.Sprintf("\n\n🔥 %d week streak!", opts.Streak),
			fmt.Sprintf("\n\n⚡ On a %d-week voting streak!", opts.Streak),
			fmt.Sprintf("\n\n🎯 %d weeks strong!", opts.Streak),
		}))
	}

	if opts.VotePower >= 3 {
		b.WriteString(g.pick([]string{
			fmt.Sprintf("\n💎 %dx vote power", opts.VotePower),
			fmt.Sprintf("\n⭐ %dx multiplier active", opts.VotePower),
			fmt.Sprintf("\n✨ Voting with %dx power", opts.VotePower),
		}))
	}

	if opts.IsFirstVote {
		b.WriteString("\n\n🎉 First vote of the week!")
	}

	b.WriteString("\n\n")
	b.WriteString(g.pick(callsToAction))
	b.WriteString(" 👇")

	return b.String()
}

// WeeklySocialMessage builds the share text for the weekly social-platform
// vote.
func (g *Generator) WeeklySocialMessage(platform string, opts VoteOptions) string {
	emojis, ok := platformEmojis[platform]
	if !ok {
		emojis = []string{"📱"}
	}
	emoji := g.pick(emojis)

	intros := []string{
		fmt.Sprintf("%s Voted %s for ZABAL's weekly focus!", emoji, platform),
		fmt.Sprintf("%s My pick: %s for this week's community engagement!", emoji, platform),
		fmt.Sprintf("%s Backing %s as the social priority this week!", emoji, platform),
		fmt.Sprintf("%s %s gets my vote for the week!", emoji, platform),
		fmt.Sprintf("%s I'm supporting %s this week!", emoji, platform),
	}
	questions := []string{
		"Where should we focus community engagement?",
		"What platform should we prioritize?",
		"Where should ZABAL show up this week?",
		"Which platform deserves the attention?",
		"Where should we build community?",
	}

	var b strings.Builder
	b.WriteString(g.pick(intros))
	b.WriteString("\n\n")
	b.WriteString(g.pick(questions))

	if opts.Streak >= 2 {
		fmt.Fprintf(&b, "\n\n🔥 %d week voting streak!", opts.Streak)
	}
	if opts.IsFirstVote {
		b.WriteString("\n\n🎉 First weekly vote!")
	}

	b.WriteString("\n\nVote now 👇")

	return b.String()
}

// LeadingMessage builds the "currently winning" share text.
func (g *Generator) LeadingMessage(mode string, voteCount int) string {
	emojis, ok := modeEmojis[mode]
	if !ok {
		emojis = []string{"🎯"}
	}
	emoji := g.pick(emojis)
	modeName := strings.ToUpper(mode)

	templates := []string{
		fmt.Sprintf("%s %s is leading with %d votes!", emoji, modeName, voteCount),
		fmt.Sprintf("%s %s MODE is in the lead right now!", emoji, modeName),
		fmt.Sprintf("%s %s is winning - %d votes and counting!", emoji, modeName, voteCount),
		fmt.Sprintf("%s Current leader: %s MODE!", emoji, modeName),
		fmt.Sprintf("%s %s is ahead with %d votes!", emoji, modeName, voteCount),
	}
	ctas := []string{
		"Add your vote before Monday 5pm ET!",
		"Cast your vote now!",
		"What's your pick?",
		"Join the vote!",
		"Make your voice heard!",
	}

	return g.pick(templates) + "\n\n" + g.pick(ctas) + " 👇"
}

// StreakMessage builds the milestone celebration for a streak length. It is
// deterministic regardless of seed.
func StreakMessage(streak int) string {
	switch {
	case streak == 1:
		return "🎉 Started my voting streak!"
	case streak == 5:
		return "🔥 5 week voting streak! Consistency pays off!"
	case streak == 10:
		return "⚡ 10 WEEK STREAK! Committed to the community!"
	case streak >= 20:
		return fmt.Sprintf("💎 %d WEEK STREAK! Diamond hands voter! 💎", streak)
	case streak%5 == 0:
		return fmt.Sprintf("🎯 %d week streak and going strong!", streak)
	default:
		return fmt.Sprintf("🔥 %d week voting streak!", streak)
	}
}
