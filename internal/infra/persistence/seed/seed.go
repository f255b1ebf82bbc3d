// Package seed holds the reference data every store starts from and returns to on reset.
package seed

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"vitrina/internal/domain/entity"
	"vitrina/internal/domain/service"
)

// DemoPassword is the password of every seeded merchant account.
const DemoPassword = "demo1234"

//nolint:gochecknoglobals
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://vitrina.local/seed"))

// ID returns the deterministic id of a seeded record, stable across resets and restarts.
func ID(name string) uuid.UUID {
	return uuid.NewSHA1(namespace, []byte(name))
}

// Dataset is the full seed state. Public users, conversations, messages, payments
// and tracking events always start empty.
type Dataset struct {
	Catalog    entity.Catalog
	Merchants  []*entity.Merchant
	Businesses []*entity.Business
	Banners    []*entity.Banner
}

// Build assembles the seed state. Paid placements expire adDuration after now.
func Build(now time.Time, adDuration time.Duration, hasher service.PasswordHasher) (*Dataset, error) {
	hash, err := hasher.Hash(DemoPassword)
	if err != nil {
		return nil, errors.Wrap(err, "hash seed password")
	}

	ds := &Dataset{Catalog: Catalog()}
	for _, m := range merchants {
		ds.Merchants = append(ds.Merchants, &entity.Merchant{
			ID:        ID("merchant/" + m.email),
			Name:      m.name,
			Email:     m.email,
			Password:  hash,
			Phone:     m.phone,
			Verified:  true,
			CreatedAt: now,
		})
	}

	for _, s := range businesses {
		b := &entity.Business{
			ID:            ID("business/" + s.name),
			Name:          s.name,
			CategoryID:    s.category,
			SubcategoryID: s.subcategory,
			ProvinceID:    s.province,
			CityID:        s.city,
			Neighborhood:  s.neighborhood,
			Address:       s.address,
			OwnerID:       ID("merchant/" + s.owner),
			Phone:         s.phone,
			WhatsApp:      s.phone,
			Description:   s.description,
			Image:         s.image,
			Gallery:       []string{},
			Opinions:      []entity.Opinion{},
			AutoRenew:     s.autoRenew,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if s.lat != 0 || s.lon != 0 {
			lat, lon := s.lat, s.lon
			b.Lat, b.Lon = &lat, &lon
		}
		b.SetAdTier(s.tier, now, adDuration)
		ds.Catalog.Denormalize(b)
		ds.Businesses = append(ds.Businesses, b)

		if banner, ok := entity.BannerFor(b); ok {
			ds.Banners = append(ds.Banners, banner)
		}
	}

	return ds, nil
}

// Catalog returns the reference collections. Province and city ids are INDEC codes.
func Catalog() entity.Catalog {
	return entity.Catalog{
		Provinces: []entity.Province{
			{ID: "02", Name: "Ciudad Autónoma de Buenos Aires"},
			{ID: "06", Name: "Buenos Aires"},
			{ID: "14", Name: "Córdoba"},
			{ID: "82", Name: "Santa Fe"},
		},
		Cities: []entity.City{
			{ID: "02000", ProvinceID: "02", Name: "Ciudad Autónoma de Buenos Aires"},
			{ID: "06441", ProvinceID: "06", Name: "La Plata"},
			{ID: "06357", ProvinceID: "06", Name: "Mar del Plata"},
			{ID: "06056", ProvinceID: "06", Name: "Bahía Blanca"},
			{ID: "14014", ProvinceID: "14", Name: "Córdoba"},
			{ID: "82084", ProvinceID: "82", Name: "Rosario"},
		},
		Categories: []entity.Category{
			{ID: "gastronomia", Name: "Gastronomía", Icon: "utensils"},
			{ID: "comercio", Name: "Comercio", Icon: "store"},
			{ID: "servicios", Name: "Servicios", Icon: "wrench"},
			{ID: "salud", Name: "Salud y Bienestar", Icon: "heart"},
			{ID: "belleza", Name: "Belleza", Icon: "scissors"},
		},
		Subcategories: []entity.Subcategory{
			{ID: "parrilla", CategoryID: "gastronomia", Name: "Parrilla"},
			{ID: "cafeteria", CategoryID: "gastronomia", Name: "Cafetería"},
			{ID: "pizzeria", CategoryID: "gastronomia", Name: "Pizzería"},
			{ID: "heladeria", CategoryID: "gastronomia", Name: "Heladería"},
			{ID: "ferreteria", CategoryID: "comercio", Name: "Ferretería"},
			{ID: "libreria", CategoryID: "comercio", Name: "Librería"},
			{ID: "indumentaria", CategoryID: "comercio", Name: "Indumentaria"},
			{ID: "veterinaria", CategoryID: "servicios", Name: "Veterinaria"},
			{ID: "mecanica", CategoryID: "servicios", Name: "Taller mecánico"},
			{ID: "farmacia", CategoryID: "salud", Name: "Farmacia"},
			{ID: "gimnasio", CategoryID: "salud", Name: "Gimnasio"},
			{ID: "optica", CategoryID: "salud", Name: "Óptica"},
			{ID: "peluqueria", CategoryID: "belleza", Name: "Peluquería"},
			{ID: "estetica", CategoryID: "belleza", Name: "Centro de estética"},
		},
	}
}

type merchantSeed struct {
	name, email, phone string
}

type businessSeed struct {
	name, category, subcategory string
	province, city              string
	neighborhood, address       string
	owner, phone                string
	description, image          string
	tier                        entity.AdTier
	autoRenew                   bool
	lat, lon                    float64
}

//nolint:gochecknoglobals
var merchants = []merchantSeed{
	{name: "Comercios Demo", email: "demo@vitrina.local", phone: "2214000000"},
	{name: "Laura Gómez", email: "laura@vitrina.local", phone: "2234000000"},
}

//nolint:gochecknoglobals
var businesses = []businessSeed{
	{
		name: "Parrilla Don Julio", category: "gastronomia", subcategory: "parrilla",
		province: "06", city: "06441", neighborhood: "Centro", address: "Calle 7 1234",
		owner: "demo@vitrina.local", phone: "2214511111",
		description: "Parrilla tradicional con cortes a la leña.", image: "/img/parrilla.jpg",
		tier: entity.AdTierHomeBanner, autoRenew: true, lat: -34.9205, lon: -57.9536,
	},
	{
		name: "Café del Bosque", category: "gastronomia", subcategory: "cafeteria",
		province: "06", city: "06441", neighborhood: "Bosque", address: "Av. 1 y 60",
		owner: "demo@vitrina.local", phone: "2214522222",
		description: "Café de especialidad frente al bosque.", image: "/img/cafe.jpg",
		tier: entity.AdTierHeaderBanner, lat: -34.9140, lon: -57.9380,
	},
	{
		name: "Ferretería El Tornillo", category: "comercio", subcategory: "ferreteria",
		province: "06", city: "06441", neighborhood: "Tolosa", address: "Calle 1 y 528",
		owner: "demo@vitrina.local", phone: "2214533333",
		description: "Todo para la construcción y el hogar.",
		tier: entity.AdTierPremium, lat: -34.8990, lon: -57.9690,
	},
	{
		name: "Peluquería Estilo", category: "belleza", subcategory: "peluqueria",
		province: "06", city: "06441", neighborhood: "Centro", address: "Calle 12 845",
		owner: "laura@vitrina.local", phone: "2214544444",
		description: "Cortes, color y peinados.",
		tier: entity.AdTierFeatured,
	},
	{
		name: "Farmacia Central", category: "salud", subcategory: "farmacia",
		province: "06", city: "06441", neighborhood: "Centro", address: "Calle 8 620",
		owner: "laura@vitrina.local", phone: "2214555555",
		description: "Farmacia de turno y perfumería.",
		tier: entity.AdTierBasic, lat: -34.9170, lon: -57.9510,
	},
	{
		name: "Pizzería Los Amigos", category: "gastronomia", subcategory: "pizzeria",
		province: "06", city: "06441", neighborhood: "City Bell", address: "Cantilo 300",
		owner: "demo@vitrina.local", phone: "2214566666",
		description: "Pizza a la piedra y empanadas.",
		tier: entity.AdTierFree,
	},
	{
		name: "Veterinaria Patitas", category: "servicios", subcategory: "veterinaria",
		province: "06", city: "06441", neighborhood: "Los Hornos", address: "Calle 137 1500",
		owner: "laura@vitrina.local", phone: "2214577777",
		description: "Clínica veterinaria y pet shop.",
		tier: entity.AdTierFree, lat: -34.9560, lon: -57.9720,
	},
	{
		name: "Librería Diagonal", category: "comercio", subcategory: "libreria",
		province: "06", city: "06441", neighborhood: "Centro", address: "Diagonal 74 1020",
		owner: "demo@vitrina.local", phone: "2214588888",
		description: "Libros, útiles escolares y papelería.",
		tier: entity.AdTierFree,
	},
	{
		name: "Gimnasio Fuerza", category: "salud", subcategory: "gimnasio",
		province: "06", city: "06441", neighborhood: "Tolosa", address: "Calle 3 y 525",
		owner: "laura@vitrina.local", phone: "2214599999",
		description: "Musculación, funcional y spinning.",
		tier: entity.AdTierBasic,
	},
	{
		name: "Heladería Costa", category: "gastronomia", subcategory: "heladeria",
		province: "06", city: "06357", neighborhood: "Playa Grande", address: "Alem 3900",
		owner: "laura@vitrina.local", phone: "2234511111",
		description: "Helado artesanal frente al mar.",
		tier: entity.AdTierPremium, lat: -38.0170, lon: -57.5310,
	},
	{
		name: "Bodegón Porteño", category: "gastronomia", subcategory: "parrilla",
		province: "02", city: "02000", neighborhood: "San Telmo", address: "Defensa 900",
		owner: "demo@vitrina.local", phone: "1145111111",
		description: "Cocina porteña de siempre.",
		tier: entity.AdTierHeaderBanner, lat: -34.6190, lon: -58.3720,
	},
	{
		name: "Taller Mecánico Sierras", category: "servicios", subcategory: "mecanica",
		province: "14", city: "14014", neighborhood: "Alta Córdoba", address: "Jerónimo Luis de Cabrera 1200",
		owner: "laura@vitrina.local", phone: "3514111111",
		description: "Mecánica general y alineación.",
		tier: entity.AdTierFree,
	},
	{
		name: "Óptica Rosario", category: "salud", subcategory: "optica",
		province: "82", city: "82084", neighborhood: "Centro", address: "Córdoba 1500",
		owner: "demo@vitrina.local", phone: "3414111111",
		description: "Anteojos recetados y de sol.",
		tier: entity.AdTierFeatured, lat: -32.9468, lon: -60.6393,
	},
}
