package catalog

const getProductsQuery = `
query GetProducts($limit: Int, $offset: Int) {
  products(limit: $limit, offset: $offset) {
    id
    title
    price
    description
    images
    category {
      id
      name
      image
    }
  }
}`

const getProductByIDQuery = `
query GetProductById($id: ID!) {
  product(id: $id) {
    id
    title
    price
    description
    images
    category {
      id
      name
      image
    }
  }
}`
