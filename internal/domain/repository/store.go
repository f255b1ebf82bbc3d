package repository

// Store groups the repositories of one storage backend.
type Store interface {
	Merchants() MerchantRepository
	PublicUsers() PublicUserRepository
	Businesses() BusinessRepository
	Banners() BannerRepository
	Payments() PaymentRepository
	Conversations() ConversationRepository
	Messages() MessageRepository
	Tracking() TrackingRepository
	Catalog() CatalogRepository
	Resetter() DataResetter
}
