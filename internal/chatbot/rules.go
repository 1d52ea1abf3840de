package chatbot

import (
	"regexp"
	"slices"
	"strings"
)

// Rule is one canned reply. Rules are checked in order and the first match wins.
type Rule struct {
	Name  string
	Match func(prompt string) bool
	Reply string
}

func exactly(phrases ...string) func(string) bool {
	return func(p string) bool {
		return slices.Contains(phrases, p)
	}
}

func contains(substr string) func(string) bool {
	return func(p string) bool {
		return strings.Contains(p, substr)
	}
}

func startsWith(prefixes ...string) func(string) bool {
	return func(p string) bool {
		for _, prefix := range prefixes {
			if strings.HasPrefix(p, prefix) {
				return true
			}
		}
		return false
	}
}

var yearsOldRegex = regexp.MustCompile(`^\d+\s*years?\s*old$`)

const urduReply = "ji han blkul mein ess trha bhi baat kr skta hoo"

const sher = `ye rha tmhara sher:-
badalate mausamon kii sair mein dil ko laganaa ho
kisii ko yaad rakhanaa ho kisii ko bhuul jaanaa ho
hameshaa der kar detaa huu main

kisii ko maut se pehle kisii Gam se bachaanaa ho
haqiiqat aur thii kuchh us ko jaa ke ye bataanaa ho
hameshaa der kar detaa huu main har kaam karne mein...`

// DefaultRules returns the assistant's built-in replies. Prompts are matched
// lower-cased and trimmed.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:  "greeting",
			Match: exactly("hello", "hi", "hey", "good morning", "good afternoon", "good evening"),
			Reply: "Hi there! How are you?",
		},
		{
			Name:  "lose-weight",
			Match: contains("loose weight"),
			Reply: "Sure, I can help with that! First, could you tell me your height?",
		},
		{
			Name:  "height",
			Match: startsWith("my height is", "height is"),
			Reply: "Got it. And what is your current weight?",
		},
		{
			Name:  "weight",
			Match: startsWith("my weight is", "weight is"),
			Reply: "Thanks! Finally, may I know your age?",
		},
		{
			Name:  "gain-muscle",
			Match: contains("gain muscle"),
			Reply: "Awesome! Let’s begin. What is your current weight?",
		},
		{
			Name: "age",
			Match: func(p string) bool {
				return strings.HasPrefix(p, "my age is") || yearsOldRegex.MatchString(p)
			},
			Reply: "Great! Based on your details I can suggest a personalized plan. Would you like a workout or diet recommendation first?",
		},
		{
			Name:  "thanks",
			Match: exactly("thank you", "thanks"),
			Reply: "You’re welcome! Happy to help.",
		},
		{
			Name:  "farewell",
			Match: exactly("bye", "goodbye"),
			Reply: "Goodbye! Stay healthy and keep moving.",
		},
		{
			Name:  "identity",
			Match: exactly("who are you"),
			Reply: "I’m FitForge, your AI fitness assistant.",
		},
		{
			Name: "roman-urdu",
			Match: exactly(
				"kia tm mere se ess trha baat kr skte ho",
				"kia tm mere se es trha baat kr skte ho",
				"kia tm mere se ese baat kr skte ho",
				"kia tm mere se ess trha bat kr skte ho",
				"kia tm mere se es trha bat kr skte ho",
				"kia tm mere se ese bat kr skte ho",
			),
			Reply: urduReply,
		},
		{
			Name:  "sher",
			Match: exactly("mjhe koi sher sunao"),
			Reply: sher,
		},
	}
}

// Match returns the first rule matching prompt.
func Match(rules []Rule, prompt string) (Rule, bool) {
	p := strings.ToLower(strings.TrimSpace(prompt))
	if p == "" {
		return Rule{}, false
	}
	for _, r := range rules {
		if r.Match(p) {
			return r, true
		}
	}
	return Rule{}, false
}
