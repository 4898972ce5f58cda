package gateway

import "fmt"

const assistantInstruction = `You are a helpful travel assistant.
FORMATTING: Use clear Markdown. Use bold for key locations. Use ### for headers. Use bullet points.
TONE: Friendly, expert, and encouraging.
CAPABILITY: You can see images if the user uploads them. Analyze food, signs, or landmarks in images.`

func bannerPrompt(destination string) string {
	return fmt.Sprintf("A beautiful, high-quality wide landscape photograph of %s. "+
		"Aesthetic travel photography style, sunny day, cinematic lighting, no text, no people. 16:9 aspect ratio.", destination)
}

func weatherPrompt(location string) string {
	return fmt.Sprintf("Get the current weather for %s. Return a JSON object with: high (number), low (number), "+
		"condition (string: e.g. Sunny, Cloudy, Rainy, Snowy), and city (string).", location)
}

func textTranslationPrompt(text, from, to string) string {
	return fmt.Sprintf("Translate this text from %s to %s: %q. Only return the translation.", from, to, text)
}

func visionTranslationPrompt(from, to string) string {
	return fmt.Sprintf("You are a travel assistant. Detect all text in this image written in %s and translate it to %s. "+
		"Only return the translated text. If there is no text, return \"No text detected\". Keep it concise.", from, to)
}

func audioTranslationPrompt(from, to string) string {
	return fmt.Sprintf("Transcribe and translate the speech in this audio from %s to %s. Only return the final translated text.", from, to)
}
