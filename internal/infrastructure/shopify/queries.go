package shopify

// GraphQL documents for the catalog read path. The search projection keeps
// variants and options so the residual option filters can run after
// normalization; the detail projection fetches the full image set.

const productSearchQuery = `
query getProducts(
  $first: Int!,
  $after: String,
  $queryString: String,
  $sortKey: ProductSortKeys,
  $reverse: Boolean
) {
  products(
    first: $first,
    after: $after,
    query: $queryString,
    sortKey: $sortKey,
    reverse: $reverse
  ) {
    edges {
      node {
        id
        title
        handle
        descriptionHtml
        vendor
        productType
        status
        tags
        createdAt
        updatedAt
        publishedAt
        options { name position values }
        featuredImage { url altText }
        images(first: 1) { edges { node { url altText } } }
        variants(first: 10) {
          edges {
            node {
              id
              title
              sku
              priceV2 { amount currencyCode }
              price: priceV2 { amount }
              inventoryQuantity
              selectedOptions { name value }
            }
          }
        }
      }
    }
    pageInfo {
      hasNextPage
      hasPreviousPage
      startCursor
      endCursor
    }
  }
}`

const productByIDQuery = `
query getProductById($id: ID!) {
  product(id: $id) {
    id
    title
    handle
    descriptionHtml
    vendor
    productType
    status
    tags
    createdAt
    updatedAt
    publishedAt
    options { name position values }
    featuredImage { url altText }
    images(first: 25) { edges { node { url altText } } }
    variants(first: 50) {
      edges {
        node {
          id
          title
          sku
          priceV2 { amount currencyCode }
          price: priceV2 { amount }
          inventoryQuantity
          selectedOptions { name value }
        }
      }
    }
  }
}`
