package prompt

// GetInstruction is the fixed user instruction sent alongside every image.
func GetInstruction() string {
	return `Analyze this image in detail and write an English prompt that can be used with AI image generation tools (Midjourney, Stable Diffusion, DALL-E).

Requirements:
1. Describe the main subject, style, composition, color palette, lighting and mood.
2. Use the usual AI art prompt format.
3. Include art style and image quality keywords.
4. Output the prompt only, with no other explanation.

Example format:
A [subject] in [setting], [style], [lighting], [mood], [technical parameters]`
}
