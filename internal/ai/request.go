package ai

import (
	"fmt"
	"strings"

	"github.com/thywilljoshua/scriptgen/internal/document"
	"github.com/thywilljoshua/scriptgen/internal/script"
)

const (
	DefaultLanguage = "Bahasa Indonesia"
	DefaultTone     = "Communicative, academic, and fluid"
)

// Greeting returns the opening line the first scene must use verbatim.
func Greeting(userName string) string {
	if name := strings.TrimSpace(userName); name != "" {
		return fmt.Sprintf("Halo, saya %s. Pada video ini saya akan menjelaskan materi penting berdasarkan dokumen yang Anda pelajari.", name)
	}
	return "Halo. Pada video ini saya akan menjelaskan materi penting berdasarkan dokumen yang Anda pelajari."
}

// Builder assembles script requests for a target language and tone.
type Builder struct {
	Language string
	Tone     string
}

// BuildRequest builds a request with the default language and tone.
func BuildRequest(payload document.EncodedPayload, userName string) ModelRequest {
	return Builder{}.Build(payload, userName)
}

// Build composes the system instruction, the user text and the output schema.
func (b Builder) Build(payload document.EncodedPayload, userName string) ModelRequest {
	lang := b.Language
	if lang == "" {
		lang = DefaultLanguage
	}
	tone := b.Tone
	if tone == "" {
		tone = DefaultTone
	}
	return ModelRequest{
		SystemInstruction: systemInstruction(lang, tone, Greeting(userName)),
		Document:          payload,
		Text:              fmt.Sprintf("Generate a full video script in %s based on this document with multiple concise key sentences per scene.", lang),
		OutputSchema:      script.Schema(),
	}
}

func systemInstruction(lang, tone, greeting string) string {
	var b strings.Builder
	b.WriteString("Act as a professor who has mastered the material from the uploaded document.\n")
	b.WriteString("Your task is to convert the contents of the document into an educational video script with a duration of about 5 to 6 minutes.\n\n")
	b.WriteString("Output Requirements:\n")
	fmt.Fprintf(&b, "1. Language: %s.\n", lang)
	fmt.Fprintf(&b, "2. Tone: %s.\n", tone)
	fmt.Fprintf(&b, "3. Format: JSON Array containing objects with keys: %q, %q, %q, %q.\n\n",
		script.KeyScene, script.KeyNarration, script.KeyKeySentences, script.KeyVisual)
	b.WriteString("Content Guidelines:\n")
	b.WriteString("- Divide the material into several logical scenes.\n")
	fmt.Fprintf(&b, "- Opening: Use the phrase: \"%s\"\n", greeting)
	b.WriteString("- Narasi: Written for voice over, clear, easy to understand, aligned with key sentences.\n")
	b.WriteString("- Kalimat Kunci: Extract MULTIPLE important points (at least 1, and 2-3 points per scene if the narration is long) from the narration to be used as visual highlights. Make each sentence VERY CONCISE (short and solid) without reducing the essence of the information. Return in the form of a string ARRAY.\n")
	b.WriteString("- Visual: English prompt for AI image generator (Educational illustration, professional layout).\n")
	b.WriteString("- Closing: Contains a conclusion and a call to action (CTA) to watch other videos.\n\n")
	b.WriteString("IMPORTANT: Do not use decorative icons or symbols in the narration. Focus on educational quality.\n")
	return b.String()
}
