// Package resource provides API transformer helpers.
//
// A transformer controls exactly what JSON shape the API returns for a
// model, including computed fields that do not live on the struct:
//
//	func Pet(p models.Pet) resource.Map {
//	    return resource.Map{
//	        "id":           p.ID,
//	        "name":         p.Name,
//	        "stock_status": p.StockStatus(),
//	    }
//	}
//
//	c.Success(resource.Collection(pets, resources.Pet))
package resource

// Map is the output shape of a transformer.
type Map = map[string]interface{}

// Collection applies a transformer to every element of items.
func Collection[T any](items []T, fn func(T) Map) []Map {
	out := make([]Map, len(items))
	for i, v := range items {
		out[i] = fn(v)
	}
	return out
}
