package knowledge

import "github.com/nikalabs/walletchat/internal/model"

// defaultEntries is the support corpus the chatbot answers from. Entries are
// embedded whole (title + content), so keep each one focused on a single topic.
var defaultEntries = []model.KnowledgeEntry{
	{
		ID:    "about-1",
		Title: "About Our Company",
		Content: `We are a crypto stablecoin banking app that uses smart wallets. Our platform enables users to mint, trade, and swap cryptocurrencies with no gas fees through gas sponsorship. We support both Web2 social login (Google, Facebook, Twitch, Discord, Twitter) and Web3 external wallets (MetaMask, WalletConnect, Coinbase Wallet).`,
		Category: "Company",
		Tags:     []string{"about", "company", "overview"},
	},
	{
		ID:    "features-1",
		Title: "Smart Wallet Features",
		Content: `Our smart wallets provide:
- Gasless transactions through gas sponsorship
- Social login options (email, passkey, Google, Facebook, Twitch, Discord, Twitter)
- External wallet connections (MetaMask, WalletConnect, Coinbase Wallet)
- NFT minting capabilities
- Secure account abstraction (ERC-4337)`,
		Category: "Features",
		Tags:     []string{"smart-wallet", "features", "gasless"},
	},
	{
		ID:    "security-1",
		Title: "Security Best Practices",
		Content: `Security is our top priority:
- All transactions are secured through smart contract wallets
- Private keys are never exposed
- We use industry-standard encryption
- Support for hardware wallet connections
- Multi-factor authentication available`,
		Category: "Security",
		Tags:     []string{"security", "safety", "privacy"},
	},
	{
		ID:    "support-1",
		Title: "Getting Help",
		Content: `If you need assistance:
- Use this chatbot for common questions
- For technical issues, contact our support team
- For financial guidance, please consult with a financial advisor
- Check our documentation for detailed guides`,
		Category: "Support",
		Tags:     []string{"help", "support", "contact"},
	},
}
