package gameplay

import (
	"math/rand"
	"strconv"
	"strings"
)

// Шаблоны сообщений для игрока (датский). Плейсхолдеры {name} и {number}
// подставляются при выборе сообщения.
var (
	correctMessages = []string{
		"Fantastisk, {name}! Du fik det helt rigtigt! 🎉",
		"Yes, {name}! Du er på rette vej! 💪",
		"Super godt gået, {name}! 🚀",
		"Spot on, {name}! Du er en mester! 🏆",
		"Det sidder lige i skabet, {name}! 😎",
		"Flot arbejde, {name}! Du er virkelig dygtig! 🌟",
		"Boom! Du ramte plet! 🔥",
		"Helt perfekt, {name}! Bliv ved sådan! ✨",
		"Wow, {name}! Du gør det fantastisk! 🎯",
		"Bravo, {name}! Du klarer det super godt! 👏",
	}

	wrongMessages = []string{
		"Ikke helt, {name}! Prøv igen – du kan godt! 🌈",
		"Øv, tæt på, {name}! Prøv igen! 💡",
		"Hovsa, {name}! Du rammer den næste! 👍",
		"Ikke noget problem, {name}! Alle laver fejl – prøv igen! 💪",
		"Ups! Bare rolig, {name}. Du klarer det! 🧠",
		"Forkert, men det er kun en lille hurdle, {name}! 🚧",
		"Ah, den missede vi, {name}. Du er stadig på vej mod succes! 🌟",
		"Næsten, {name}! Du er så tæt på – prøv igen! ✨",
		"Kom igen, {name}! Jeg tror på dig! 💪",
		"Det er helt okay, {name}. Giv det endnu et forsøg! 🌟",
	}

	welcomeMessage = "Hej, {name}! Klar til at lære gangetabellen?"
	endGameMessage = "Tillykke, {name}! Du har mestret {number}-tabellen! 🎉"
)

// RandomCorrectMessage возвращает случайное поздравление с подставленным именем
func RandomCorrectMessage(rng *rand.Rand, name string) string {
	msg := correctMessages[rng.Intn(len(correctMessages))]
	return strings.ReplaceAll(msg, "{name}", name)
}

// RandomWrongMessage возвращает случайное утешение с подставленным именем
func RandomWrongMessage(rng *rand.Rand, name string) string {
	msg := wrongMessages[rng.Intn(len(wrongMessages))]
	return strings.ReplaceAll(msg, "{name}", name)
}

// WelcomeMessage возвращает приветствие для экрана выбора таблицы
func WelcomeMessage(name string) string {
	return strings.ReplaceAll(welcomeMessage, "{name}", name)
}

// EndGameMessage возвращает поздравление с завершением игры
func EndGameMessage(name string, table int) string {
	msg := strings.ReplaceAll(endGameMessage, "{name}", name)
	return strings.ReplaceAll(msg, "{number}", strconv.Itoa(table))
}
