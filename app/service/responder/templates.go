package responder

// Static knowledge tables and template families. All of this is read-only
// after startup; placeholder tokens are filled by fillTemplate.

var greetingsNew = []string{
	"Good {time_of_day}! Welcome to BookSwap! 🌟 I'm {bot_name}, your friendly assistant. I'm excited to help you discover the wonderful world of book sharing!",
	"Good {time_of_day} and welcome! I'm {bot_name} 📚 Ask me about donations, swaps, pickups or your next great read!",
}

var greetingsReturning = []string{
	"Good {time_of_day}! Great to see you back on BookSwap! 📚 How can I help you today?",
	"Good {time_of_day}! I'm {bot_name}, ready to assist you with all things books! What would you like to know? 📖",
	"Good {time_of_day}! Ready to discover some amazing books? What can I help you with?",
}

var thanksReplies = []string{
	"You're absolutely welcome! It's my pleasure to help fellow book lovers! 📚✨",
	"Happy to help! That's what the BookSwap community is all about! 🤗",
	"My pleasure! Feel free to reach out anytime you need assistance with books! 🌟",
}

var goodbyeReplies = []string{
	"Goodbye! Thanks for being part of our reading community! 📚👋",
	"See you soon! Happy reading and book sharing! 🌟",
	"Until next time! May you find your next great read! 📖✨",
}

var genericReplies = []string{
	"I'd be happy to help! Could you be more specific about what you need?",
	"I'm here to assist with BookSwap! What would you like to know?",
	"Let me help you with that! Can you provide more details?",
}

var sampleTitles = map[string][]string{
	"fiction":   {"The Alchemist", "To Kill a Mockingbird", "1984"},
	"romance":   {"Pride and Prejudice", "The Notebook", "Jane Eyre"},
	"mystery":   {"Gone Girl", "Sherlock Holmes", "Agatha Christie novels"},
	"fantasy":   {"Harry Potter series", "Lord of the Rings", "Game of Thrones"},
	"science":   {"A Brief History of Time", "Sapiens", "Cosmos"},
	"business":  {"Rich Dad Poor Dad", "Good to Great", "The Lean Startup"},
	"self-help": {"Atomic Habits", "The Power of Now", "You Can Win"},
	"biography": {"Steve Jobs", "Long Walk to Freedom", "Becoming"},
}

var fallbackTitles = []string{"The Alchemist", "Atomic Habits", "Sapiens"}

var authorWorks = map[string][]string{
	"j k rowling":     {"Harry Potter series", "The Casual Vacancy"},
	"stephen king":    {"The Shining", "It", "The Stand"},
	"agatha christie": {"Murder on the Orient Express", "And Then There Were None"},
	"jane austen":     {"Pride and Prejudice", "Emma", "Sense and Sensibility"},
	"paulo coelho":    {"The Alchemist", "Brida", "Eleven Minutes"},
}

type platformSection struct {
	title   string
	content string
	actions []string
}

var platformInfo = map[string]platformSection{
	"general": {
		title: "About BookSwap",
		content: "BookSwap is a community-driven platform where readers can:\n" +
			"📚 Donate books to help others\n" +
			"🔄 Swap books to discover new reads\n" +
			"🚚 Use convenient pickup services\n" +
			"🤝 Connect with fellow book lovers\n\n" +
			"Our mission is to keep books in circulation and build a reading community!",
		actions: []string{"Browse Gallery", "Add a Book", "Request Pickup"},
	},
	"pickup": {
		title: "Pickup Service",
		content: "Our pickup service offers:\n" +
			"• Schedule collection from your location\n" +
			"• Choose convenient time slots\n" +
			"• Track requests with unique IDs\n" +
			"• SMS and email updates\n" +
			"• Perfect for donations and swaps!",
		actions: []string{"Request Pickup", "Track Pickup", "Pickup FAQs"},
	},
	"swap": {
		title: "Book Swapping",
		content: "Book swapping lets you:\n" +
			"• Exchange books with other users\n" +
			"• Browse books marked as 'Swap'\n" +
			"• Connect directly with owners\n" +
			"• Arrange meetups or use pickup\n" +
			"• Build your collection for free!",
		actions: []string{"Browse Swaps", "Add Swap Book", "My Swaps"},
	},
	"gallery": {
		title: "Book Gallery",
		content: "The gallery features:\n" +
			"• All available books in one place\n" +
			"• Filter by genre, condition, type\n" +
			"• Search for specific titles/authors\n" +
			"• View detailed book information\n" +
			"• Direct contact with owners",
		actions: []string{"Visit Gallery", "Search Books", "Filter Options"},
	},
}

const donationTemplate = "Ready to donate your books? Here's how:\n\n" +
	"1. Click 'Add Book' from the main menu\n" +
	"2. Enter book details (title, author, genre)\n" +
	"3. Set condition as \"{condition}\" or adjust as needed\n" +
	"4. Select 'Donate' as the book type\n" +
	"5. Add your location for pickup/contact\n" +
	"6. Upload a photo (optional but helpful!)\n" +
	"7. Submit and help someone discover a great read!\n\n" +
	"{personalized_tip}"

const pickupTemplate = "Ready to request a pickup? Here's the process:\n\n" +
	"1. Go to the Pickup Request page\n" +
	"2. Fill in your details (name, email, phone)\n" +
	"3. Enter the book information you want collected\n" +
	"4. Provide a complete address with landmarks\n" +
	"5. Choose your preferred date/time\n" +
	"6. Submit and get a tracking ID\n\n" +
	"{time_advice}\n\n" +
	"You'll receive SMS and email confirmations with your pickup details! 🚚"

const swapTemplate = "🔄 To swap books:\n" +
	"1. Browse the Gallery to find books marked 'Swap'\n" +
	"2. Click on a book you're interested in\n" +
	"3. Contact the owner through the platform\n" +
	"4. Arrange to meet or use our pickup service\n" +
	"5. Don't forget to add your own books for swapping!"

const recommendationTemplate = "Here are some {genre} books I recommend:\n{book_list}\n" +
	"Check our Gallery to see if any of these are available for swap or donation! 🌟"

const supportTemplate = "Here's how to resolve {issue} issues:\n\n{troubleshooting_steps}\n\n{additional_help}"

type troubleshootingScript struct {
	steps          []string
	additionalHelp string
}

var troubleshooting = map[string]troubleshootingScript{
	"login": {
		steps: []string{
			"Check email/password spelling",
			"Ensure caps lock is off",
			"Try password reset",
			"Clear browser cache",
			"Check if registered",
		},
		additionalHelp: "Still can't log in? Try creating a new account or contact support.",
	},
	"upload": {
		steps: []string{
			"File should be under 5MB",
			"Use JPG, PNG, or GIF format",
			"Ensure stable internet connection",
			"Try refreshing the page",
			"Images are optional for listings",
		},
		additionalHelp: "If problems persist, try a different image or skip the photo step.",
	},
	"slow": {
		steps: []string{
			"Check internet connection",
			"Clear browser cache and cookies",
			"Close other browser tabs",
			"Try a different browser",
			"Restart your browser",
		},
		additionalHelp: "High traffic periods may cause slowdowns. Please be patient!",
	},
}

// Safe defaults for every placeholder a template family may carry, so a
// literal {token} can never leak into a reply.
var placeholderDefaults = map[string]string{
	"genre":                 "great",
	"book_list":             "1. The Alchemist\n2. Atomic Habits\n3. Sapiens",
	"issue":                 "technical",
	"troubleshooting_steps": "1. Refresh the page\n2. Clear browser cache\n3. Check internet connection",
	"additional_help":       "Still having problems? Try refreshing or contact support!",
	"personalized_tip":      "Your contribution makes a difference in the reading community! 🌟",
	"condition":             "good",
	"time_advice":           "Standard pickups are scheduled 2-5 days in advance.",
	"time_of_day":           "day",
	"bot_name":              "Elina",
}
