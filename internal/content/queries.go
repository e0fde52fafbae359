package content

// GROQ queries used by resolution sessions. Every query is parameterized with
// $language (the target locale) so the store can apply locale-scoped
// projections server-side; keyed localized arrays come back intact and are
// resolved client-side with the shared fallback chain.

const postProjection = `{
  _id,
  slug,
  title,
  excerpt,
  body,
  references,
  "coverImageUrl": coverImage.asset->url,
  "coverImageAlt": coverImage.alt,
  author,
  categories,
  tags,
  publishedAt,
  featured,
  featuredCategory
}`

const (
	queryPostBySlug = `*[_type == "post" && slug.current == $slug][0]` + postProjection

	queryAllPosts = `*[_type == "post" && defined(slug.current)] | order(publishedAt desc)` + postProjection

	queryOrganization = `*[_type == "organization"][0]{
  _id,
  name,
  "logoUrl": logo.asset->url,
  sameAs,
  description
}`

	queryAllCategories = `*[_type == "category"] | order(orderRank asc){
  _id,
  title,
  slug,
  description,
  parent
}`

	queryCategoriesByID = `*[_type == "category" && _id in $ids]{
  _id,
  title,
  slug,
  description,
  parent
}`

	queryCategoryByID = `*[_type == "category" && _id == $id][0]{
  _id,
  title,
  slug,
  description,
  parent
}`

	queryAllAuthors = `*[_type == "author"] | order(name asc){
  _id,
  name,
  slug,
  bio,
  "imageUrl": image.asset->url
}`

	queryAuthorsByID = `*[_type == "author" && _id in $ids]{
  _id,
  name,
  slug,
  bio,
  "imageUrl": image.asset->url
}`
)
