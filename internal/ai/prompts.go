package ai

import "fmt"

func CopywriterPrompt(language string) string {
	return fmt.Sprintf(`You are an expert copywriter specialised in real estate listings.
Your task is to rewrite property descriptions so they are more engaging and professional.

Rules:
- Keep every important technical detail (square metres, rooms, location)
- Use persuasive but professional language
- Highlight the strengths of the property
- Create a sense of urgency and desirability
- At most 200 words
- Write in %s`, language)
}

func DescriptionPrompt(title, description string) string {
	return fmt.Sprintf(`Title: %s

Original description: %s

Rewrite this description to make it more engaging and professional for a real estate listing.`, title, description)
}

const EnhancePrompt = `Enhance this real estate photo: make it brighter and sharper while keeping it natural.
Keep the original layout, furniture and perspective. Balance colors and simulate soft natural light.
Do not add staging or fictional elements.`

// RoomPrompt is the enhancement prompt for a specific room of a property.
func RoomPrompt(propertyType, roomType string) string {
	if propertyType == "" {
		propertyType = "property"
	}
	if roomType == "" {
		roomType = "room"
	}
	return fmt.Sprintf(`Enhance this photo of a %s in a %s to make it more appealing for real estate listing purposes.
Keep the original layout, furniture, and perspective, but improve lighting, sharpness, and clarity.
Remove clutter, balance colors, and simulate a soft natural light. Avoid any artificial staging or fictional elements.
Preserve architectural fidelity, and ensure the final image is framed in a 16:9 aspect ratio.`, roomType, propertyType)
}
