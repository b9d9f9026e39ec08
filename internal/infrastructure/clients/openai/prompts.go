package openai

import (
	"fmt"
)

// recommendationCount is the number of products a completed interview yields.
const recommendationCount = 3

const recommendationSystemPrompt = `You are an expert electronics consultant who provides personalized product recommendations based on customer needs and preferences.`

func buildRecommendationUserPrompt(transcript string) string {
	return fmt.Sprintf(`Based on this customer interview transcript, generate 3 personalized electronics product recommendations.

Transcript: %q

Please analyze the customer's needs, preferences, budget, and use cases mentioned in the transcript. Return a JSON response with an array of exactly 3 product recommendations. Each product should have:
- id: unique identifier
- name: product name
- shortDescription: brief description (max 100 chars)
- price: formatted price string (e.g., "$999")
- rating: number between 4.0-5.0
- image: appropriate Unsplash URL for the product category
- features: array of 3-4 key features
- affiliateLink: Amazon affiliate URL (use placeholder: "https://amazon.com/dp/PRODUCT_ID?tag=velectro-20")
- aiRecommendation: personalized explanation of why this product matches their needs (max 200 chars)

Focus on popular, real electronics products that match their requirements. Ensure recommendations are diverse across different categories when appropriate.

Respond with valid JSON in this format: { "products": [...] }`, transcript)
}
